package assistant

import (
	"testing"

	"github.com/nutriassist/backend/internal/domain/chat"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Shortcut(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		name          string
		query         string
		expectedRoute chat.Route
		expectedOK    bool
	}{
		{name: "问候语完全匹配", query: "hello", expectedRoute: chat.RouteGreeting, expectedOK: true},
		{name: "问候语 hi", query: "hi", expectedRoute: chat.RouteGreeting, expectedOK: true},
		{name: "告别语完全匹配", query: "thanks", expectedRoute: chat.RouteFarewell, expectedOK: true},
		{name: "多词告别语", query: "see you", expectedRoute: chat.RouteFarewell, expectedOK: true},
		{name: "句首问候词短路优先于医疗关键词", query: "hi, what about diabetes", expectedRoute: chat.RouteGreeting, expectedOK: true},
		{name: "句中告别短语短路", query: "thank you for the help", expectedRoute: chat.RouteFarewell, expectedOK: true},
		{name: "问候词在句中不短路", query: "say hi to the doctor", expectedOK: false},
		{name: "问候词作为前缀片段不短路", query: "high protein foods", expectedOK: false},
		{name: "普通问题不短路", query: "what is a balanced diet", expectedOK: false},
		{name: "空串不短路", query: "", expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, ok := router.Shortcut(tt.query)
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedRoute, route)
			}
		})
	}
}

func TestRouter_Resolve(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		name          string
		query         string
		expectedRoute chat.Route
	}{
		{name: "医疗关键词命中", query: "what are the symptoms of diabetes", expectedRoute: chat.RouteMedicalLookup},
		{name: "关键词出现在句中任意位置", query: "tell me about this disease", expectedRoute: chat.RouteMedicalLookup},
		{name: "饮食计划关键词命中", query: "give me a diet plan for weight loss", expectedRoute: chat.RouteDietPlan},
		{name: "医疗关键词优先于饮食计划", query: "diet plan for my medical condition", expectedRoute: chat.RouteMedicalLookup},
		{name: "无关键词走通用检索", query: "how much protein does an egg have", expectedRoute: chat.RouteGeneralRAG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedRoute, router.Resolve(tt.query))
		})
	}
}

func TestRouter_Deterministic(t *testing.T) {
	router := NewRouter()
	query := "treatment options for hypertension"

	first := router.Resolve(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, router.Resolve(query), "相同输入应产生相同路由")
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello", Normalize("  Hello  "))
	assert.Equal(t, "diet plan", Normalize("DIET PLAN"))
	assert.Equal(t, "", Normalize("   "))
}
