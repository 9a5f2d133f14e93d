package assistant

// DefaultChunkSize 默认分块最大字符数
const DefaultChunkSize = 2000

// SplitContent 将文本按最大字符数切分为有序分块
// 分块覆盖原文且不重叠、不丢字符，按 rune 边界切分避免截断多字节字符。
// 不做语义边界识别（可能从词或句中间切开），这是刻意的简化：
// 分块只服务于模型上下文窗口，逐块摘要阶段会重新组织内容。
// maxLen <= 0 时使用 DefaultChunkSize。
func SplitContent(content string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}
	if content == "" {
		return nil
	}

	runes := []rune(content)
	chunks := make([]string, 0, (len(runes)+maxLen-1)/maxLen)
	for start := 0; start < len(runes); start += maxLen {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
