package model

// All 需要迁移的模型，顺序即建表顺序
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Location{},
		&Post{},
		&Comment{},
	}
}
