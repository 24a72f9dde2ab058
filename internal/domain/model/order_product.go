package model

// 注文と商品の多対多リンク。複合主キーで同じペアは入らない。
type OrderProduct struct {
	OrderID   int64 `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID int64 `gorm:"primaryKey;autoIncrement:false" json:"product_id"`

	// リンクは実在する注文・商品しか指せない
	Order   Order   `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}
