package assistant

import (
	"strings"
	"unicode"

	"github.com/nutriassist/backend/internal/domain/chat"
)

// 路由规则关键词表，全部按小写匹配
// 顺序即求值顺序：问候/告别的廉价检查先于领域分类，
// 领域分类先于关键词分类，最后落到通用检索。
var (
	greetingTokens = []string{"hey", "hi", "hello", "greetings", "howdy"}
	farewellTokens = []string{"bye", "goodbye", "see you", "take care", "thank you", "thanks"}

	medicalKeywords = []string{
		"diagnosis", "symptom", "disease", "treatment",
		"medicine", "medical condition", "patient",
	}
	dietPlanKeywords = []string{"diet plan"}
)

// Router 查询路由器
// route(query) 是归一化文本的纯函数，单次求值、无跨请求状态。
type Router struct{}

// NewRouter 创建路由器
func NewRouter() *Router {
	return &Router{}
}

// Shortcut 判断问候/告别短路路由
// 问候只看句首词（"hi, what about diabetes" 仍按问候处理，短路规则先于领域规则），
// 告别按整词/整短语出现在任意位置匹配。匹配不到时返回 false。
func (r *Router) Shortcut(normalizedQuery string) (chat.Route, bool) {
	words := tokenize(normalizedQuery)
	if len(words) == 0 {
		return 0, false
	}

	for _, token := range greetingTokens {
		if words[0] == token {
			return chat.RouteGreeting, true
		}
	}

	padded := " " + strings.Join(words, " ") + " "
	for _, token := range farewellTokens {
		if strings.Contains(padded, " "+token+" ") {
			return chat.RouteFarewell, true
		}
	}
	return 0, false
}

// tokenize 按空白切词，标点视为分隔符
func tokenize(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' {
			return r
		}
		return ' '
	}, query)
	return strings.Fields(cleaned)
}

// Resolve 在领域检查通过后选择处理策略
// 按序做子串匹配，首个命中的规则生效
func (r *Router) Resolve(normalizedQuery string) chat.Route {
	for _, keyword := range medicalKeywords {
		if strings.Contains(normalizedQuery, keyword) {
			return chat.RouteMedicalLookup
		}
	}
	for _, keyword := range dietPlanKeywords {
		if strings.Contains(normalizedQuery, keyword) {
			return chat.RouteDietPlan
		}
	}
	return chat.RouteGeneralRAG
}

// Normalize 查询归一化：大小写折叠 + 首尾空白剔除
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
