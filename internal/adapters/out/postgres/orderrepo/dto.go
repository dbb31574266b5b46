// Package orderrepo provides the data transfer objects and repository for
// order persistence, mapping the order aggregate and its item lines onto
// the orders and order_items tables.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status is stored as its canonical string so the raw-SQL query
// side and exports read naturally.
type OrderDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BuyerID     uuid.UUID      `gorm:"type:uuid;index"`
	AddressID   uuid.UUID      `gorm:"type:uuid"`
	Items       []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal    float64
	ShippingFee float64
	Taxes       float64
	FinalAmount float64
	Status      string `gorm:"index"`
	StatusNote  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one immutable order line.
type OrderItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	SellerID  uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	Price     float64
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			SellerID:  item.SellerID().Bytes(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	totals := aggregate.Totals()
	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		BuyerID:     aggregate.BuyerID().Bytes(),
		AddressID:   aggregate.AddressID().Bytes(),
		Items:       items,
		Subtotal:    totals.Subtotal(),
		ShippingFee: totals.ShippingFee(),
		Taxes:       totals.Taxes(),
		FinalAmount: totals.FinalAmount(),
		Status:      aggregate.Status().String(),
		StatusNote:  aggregate.StatusNote(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totals, err := order.RestoreTotals(dto.Subtotal, dto.ShippingFee, dto.Taxes, dto.FinalAmount)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	restored, err := order.RestoreOrder(
		id, buyerID, addressID, items, totals, status, dto.CreatedAt, dto.UpdatedAt)
	if err != nil {
		return nil, err
	}
	restored.RecordStatusNote(dto.StatusNote)
	return restored, nil
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(id, productID, sellerID, dto.Quantity, dto.Price)
}
