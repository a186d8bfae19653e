package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context. Adapters never automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&productRecord{},
		&stockRecord{},
		&movementRecord{},
		&orderRecord{},
		&lineRecord{},
		&idempotencyRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	Role      string    `gorm:"column:role;type:varchar(16);not null;default:customer"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name;not null"`
	Flavor    string          `gorm:"column:flavor"`
	Size      string          `gorm:"column:size"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(8,2);not null;check:chk_products_price,price >= 0.01"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Stock schema mirrors the inventory Postgres adapter. One record per product,
// removed together with the product.
type stockRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	ProductID int64         `gorm:"column:product_id;not null;uniqueIndex"`
	Quantity  int64         `gorm:"column:quantity;not null;default:0;check:chk_stock_records_quantity,quantity >= 0"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
	Product   productRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (stockRecord) TableName() string { return "stock_records" }

type movementRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	ProductID int64         `gorm:"column:product_id;not null;index"`
	Delta     int64         `gorm:"column:delta;not null"`
	Before    int64         `gorm:"column:quantity_before;not null"`
	After     int64         `gorm:"column:quantity_after;not null"`
	Reason    string        `gorm:"column:reason;type:varchar(32);not null"`
	OrderID   *int64        `gorm:"column:order_id;index"`
	ActorID   int64         `gorm:"column:actor_id"`
	CreatedAt time.Time     `gorm:"column:created_at;index"`
	Product   productRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (movementRecord) TableName() string { return "stock_movements" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OwnerID   int64           `gorm:"column:owner_id;not null;index:idx_orders_owner_status"`
	Status    string          `gorm:"column:status;type:varchar(32);not null;index:idx_orders_owner_status"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Lines go with their order; a product cannot be deleted while a line references it.
type lineRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null;index"`
	Quantity  int64           `gorm:"column:quantity;not null;check:chk_order_lines_quantity,quantity >= 1"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(8,2);not null"`
	Order     orderRecord     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Product   productRecord   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (lineRecord) TableName() string { return "order_lines" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
