package entity

// Account represents the local dashboard account. The deployment is
// single-user; the table exists so credentials live next to the rest of the
// data.
type Account struct {
	Id        string `json:"id" gorm:"column:id;primaryKey"`
	Nickname  string `json:"nickname" gorm:"column:nickname"`
	Password  string `json:"-" gorm:"column:password"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt int64  `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// AccountInfo represents public account info
type AccountInfo struct {
	Id        string `json:"id"`
	Nickname  string `json:"nickname"`
	CreatedAt int64  `json:"created_at"`
}

// ToAccountInfo converts Account to AccountInfo
func (a *Account) ToAccountInfo() *AccountInfo {
	return &AccountInfo{Id: a.Id, Nickname: a.Nickname, CreatedAt: a.CreatedAt}
}
