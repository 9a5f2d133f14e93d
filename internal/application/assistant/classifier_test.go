package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/nutriassist/backend/internal/infrastructure/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompletionClient 按脚本应答的补全客户端
type fakeCompletionClient struct {
	respond func(messages []llm.Message) (string, error)
	calls   [][]llm.Message
}

func (f *fakeCompletionClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls = append(f.calls, messages)
	return f.respond(messages)
}

func TestClassifier_IsInDomain(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected bool
	}{
		{name: "严格肯定应答判定为领域内", response: "True", expected: true},
		{name: "带空白的肯定应答判定为领域内", response: "  True\n", expected: true},
		{name: "否定应答判定为领域外", response: "False", expected: false},
		{name: "小写 true 不算肯定应答", response: "true", expected: false},
		{name: "自由文本按领域外处理", response: "Yes, this is a medical question.", expected: false},
		{name: "空应答按领域外处理", response: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeCompletionClient{
				respond: func([]llm.Message) (string, error) { return tt.response, nil },
			}
			classifier := NewClassifier(client)

			inDomain, err := classifier.IsInDomain(context.Background(), "what is diabetes")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, inDomain)
		})
	}
}

func TestClassifier_TransportError(t *testing.T) {
	client := &fakeCompletionClient{
		respond: func([]llm.Message) (string, error) { return "", errors.New("connection refused") },
	}
	classifier := NewClassifier(client)

	inDomain, err := classifier.IsInDomain(context.Background(), "what is diabetes")
	require.Error(t, err, "传输层错误应向上传播")
	assert.False(t, inDomain)
}

func TestClassifier_QueryInPrompt(t *testing.T) {
	client := &fakeCompletionClient{
		respond: func([]llm.Message) (string, error) { return "True", nil },
	}
	classifier := NewClassifier(client)

	_, err := classifier.IsInDomain(context.Background(), "protein requirements")
	require.NoError(t, err)
	require.Len(t, client.calls, 1)
	assert.Contains(t, client.calls[0][0].Content, "protein requirements", "查询文本应出现在分类 Prompt 中")
}
