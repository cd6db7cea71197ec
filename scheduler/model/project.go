package model

// Project scheduler-side namespace all process definitions live in
type Project struct {
	ID          int    `json:"id"`
	Code        int64  `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      int    `json:"userId"`
	UserName    string `json:"userName"`
	CreateTime  string `json:"createTime"`
	UpdateTime  string `json:"updateTime"`
}
