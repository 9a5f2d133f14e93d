package chat

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry 一条对话记录
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Route 查询的处理策略
type Route int

const (
	// RouteGreeting 问候语，直接返回固定回复
	RouteGreeting Route = iota
	// RouteFarewell 告别语，直接返回固定回复
	RouteFarewell
	// RouteOutOfDomain 非医疗/营养领域的查询
	RouteOutOfDomain
	// RouteMedicalLookup 医疗诊断类查询，走联网检索 + 分块摘要
	RouteMedicalLookup
	// RouteDietPlan 饮食计划类查询，走联网检索 + 分块摘要
	RouteDietPlan
	// RouteGeneralRAG 其他领域内查询，走向量检索
	RouteGeneralRAG
)

// String 返回路由名称
func (r Route) String() string {
	switch r {
	case RouteGreeting:
		return "greeting"
	case RouteFarewell:
		return "farewell"
	case RouteOutOfDomain:
		return "out_of_domain"
	case RouteMedicalLookup:
		return "medical_lookup"
	case RouteDietPlan:
		return "diet_plan"
	case RouteGeneralRAG:
		return "general_rag"
	default:
		return "unknown"
	}
}

// IsShortcut 是否为不经过检索与合成的短路路由
// 短路路由不写入应答缓存
func (r Route) IsShortcut() bool {
	return r == RouteGreeting || r == RouteFarewell || r == RouteOutOfDomain
}
