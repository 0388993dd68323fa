package mapper

import (
	"time"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Customer{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Vip:       c.Vip,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}

	customer := &model.Customer{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Vip:       c.Vip,
		CreatedAt: c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		customer.UpdatedAt = *c.UpdatedAt
	}
	return customer
}

func (m *CustomerMapper) OperatorToEntity(o *model.Operator) *entity.Operator {
	if o == nil {
		return nil
	}

	return &entity.Operator{
		Id:           o.Id,
		Email:        o.Email,
		Name:         o.Name,
		PasswordHash: o.PasswordHash,
		Role:         o.Role,
		CreatedAt:    o.CreatedAt,
	}
}

func (m *CustomerMapper) OperatorToModel(o *entity.Operator) *model.Operator {
	if o == nil {
		return nil
	}

	return &model.Operator{
		Id:           o.Id,
		Email:        o.Email,
		Name:         o.Name,
		PasswordHash: o.PasswordHash,
		Role:         o.Role,
		CreatedAt:    o.CreatedAt,
	}
}
