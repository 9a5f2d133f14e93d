package patient

import "errors"

// ErrNotFound 指定 MRN 的患者档案不存在
var ErrNotFound = errors.New("patient record not found")

// Repository 患者档案仓库接口
type Repository interface {
	// GetByMRN 按 MRN 查询档案，不存在时返回 ErrNotFound
	GetByMRN(mrn string) (*Record, error)

	// Save 保存档案（存在则覆盖）
	Save(record *Record) error

	// List 返回全部档案，按 MRN 排序
	List() ([]*Record, error)
}
