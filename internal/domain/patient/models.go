package patient

import "encoding/json"

// Record 患者档案
// MRN（Medical Record Number）为唯一标识。
// Details 保存自由格式的病史字段（过敏、慢性病、用药限制等），
// 整体以 JSON 注入到合成 Prompt 中，本服务只读不解释。
type Record struct {
	MRN       string            `json:"mrn"`
	Name      string            `json:"name"`
	Age       int               `json:"age"`
	Gender    string            `json:"gender"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt int64             `json:"created_at"`
	UpdatedAt int64             `json:"updated_at"`
}

// ToPromptJSON 序列化为注入 Prompt 的 JSON 文本
// 序列化失败或空档案时返回空对象，调用方按"无档案"处理
func (r *Record) ToPromptJSON() string {
	if r == nil {
		return "{}"
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(data)
}
