package assistant

import (
	"fmt"
	"strings"
)

// PersonaProfile 摘要流水线的角色与产出形态配置
// 医疗查询与饮食计划共用同一条流水线，仅此配置不同。
type PersonaProfile struct {
	// Name 路由名，用于日志
	Name string
	// personaTemplate 角色设定模板，%s 为患者档案 JSON
	personaTemplate string
	// finalInstruction 最终合成的产出形态要求
	finalInstruction string
}

// MedicalProfile 医疗诊断查询的流水线配置：四段式结构化应答
var MedicalProfile = PersonaProfile{
	Name: "medical_lookup",
	personaTemplate: "Imagine you're a nutritionist with expertise in all types of medical conditions. " +
		"%s, this is a patient's medical history in JSON format. Based on that, you'll need to understand " +
		"their medical records. For any subsequent prompts I give, you must tailor your response according " +
		"to the restrictions and requirements outlined in the patient's medical records. Consider this as " +
		"PROMPT-1. Do not provide any type of introduction or conclusion for the generated content by your side.",
	finalInstruction: "Provide a **final detailed summary** that retains the most important points and enough " +
		"context for understanding, in the smallest possible form. Provide the response in 4 sections: " +
		"1. About the condition, 2. Prevention strategies, 3. Medication options, and 4. Nutritional advice, " +
		"ensuring clarity and completeness.",
}

// DietPlanProfile 饮食计划查询的流水线配置：自由格式计划
var DietPlanProfile = PersonaProfile{
	Name: "diet_plan",
	personaTemplate: "Imagine you're a nutritionist with expertise in creating a good diet planner based on " +
		"patient's %s, this is a patient's medical history in JSON format. Based on that, you'll need to " +
		"understand their medical records. For any subsequent prompts I give, you must tailor your response " +
		"according to the restrictions and requirements outlined in the patient's medical records. Consider " +
		"this as PROMPT-1. Do not provide any type of introduction or conclusion for the generated content " +
		"by your side.",
	finalInstruction: "Provide a **Customized Diet plan** that retains the most important points and enough " +
		"context for understanding, in the smallest possible form.",
}

// persona 渲染角色设定
func (p *PersonaProfile) persona(patientJSON string) string {
	return fmt.Sprintf(p.personaTemplate, patientJSON)
}

// buildGatePrompt 构建领域分类 Prompt
func buildGatePrompt(query string) string {
	return "I'll provide you a query, check if the query is related to medical diagnosis, condition or " +
		"anything related to asking medical conditions like diet plan. Then only return True else return " +
		"False. Do not provide the response in markdown format. and also do not provide any introductory " +
		"or concluding statements from your side. The query should be purely related to medical only. " +
		"The user may ask you to write computer code for medical for these cases these are not medical " +
		"related. This is the query: " + query
}

// buildChunkPrompt 构建逐块摘要的第二条 Prompt
// partIndex 从 1 开始，提示模型这是第几段抓取内容
func buildChunkPrompt(chunk string, partIndex int, query string) string {
	return fmt.Sprintf("Consider this as PROMPT-2: %s. This is part %d of the webscraped content I "+
		"gathered based on the user query: %s. Summarize the following content into the smallest possible "+
		"form while retaining all key points and providing essential details. Your summary must be concise, "+
		"clear, and cover every detail strictly from the provided content without adding or omitting any "+
		"information. Provide sufficient context to help the user understand, but do not introduce or "+
		"conclude the response.", chunk, partIndex, query)
}

// buildFinalPrompt 构建最终合成的第二条 Prompt
func buildFinalPrompt(profile *PersonaProfile, combinedSummary string) string {
	return fmt.Sprintf("Consider this as PROMPT-2: %s. This is the combined summary from multiple parts "+
		"of webscraped content. %s", combinedSummary, profile.finalInstruction)
}

// buildPrescriptionPrompt 构建向量库无结果时的直接应答 Prompt
func buildPrescriptionPrompt(query string) string {
	return fmt.Sprintf("Provide concise nutritional information about the following food: %s. "+
		"Include details such as calories, macronutrients (protein, carbohydrates, fats), and any health "+
		"benefits or concerns. Format your response like a doctor's prescription, ensuring clarity and "+
		"brevity. If the food is not related to diet or nutrition, respond with 'I'm not allowed to "+
		"respond to that :) Hope you understand >_< '.", query)
}

// buildStuffPrompt 构建基于检索段落的直接问答 Prompt
// 将全部段落一次性填入上下文（向量检索结果通常远小于抓取内容）
func buildStuffPrompt(passages []string, query string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question using only the reference passages below. If the passages do not " +
		"contain the answer, reply exactly with: I don't know.\n\n")
	for i, passage := range passages {
		fmt.Fprintf(&sb, "Passage %d:\n%s\n\n", i+1, passage)
	}
	sb.WriteString("Question: ")
	sb.WriteString(query)
	return sb.String()
}
