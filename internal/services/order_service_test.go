package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"greenmarket/internal/models"
)

func TestSubOrderRefIDs(t *testing.T) {
	subOrders := []models.SubOrderRequest{
		{
			SellerID: 11,
			Products: []models.OrderItemRequest{
				{ProductID: 100}, {ProductID: 101},
			},
		},
		{
			SellerID: 12,
			Products: []models.OrderItemRequest{
				{ProductID: 101}, {ProductID: 102},
			},
		},
		{
			SellerID: 11,
			Products: []models.OrderItemRequest{
				{ProductID: 100},
			},
		},
	}

	sellerIDs, productIDs := subOrderRefIDs(subOrders)
	assert.ElementsMatch(t, []int64{11, 12}, sellerIDs)
	assert.ElementsMatch(t, []int64{100, 101, 102}, productIDs)
}

func TestSubOrderRefIDsEmpty(t *testing.T) {
	sellerIDs, productIDs := subOrderRefIDs(nil)
	assert.Empty(t, sellerIDs)
	assert.Empty(t, productIDs)
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, isDuplicateKey(dup))
	assert.True(t, isDuplicateKey(fmt.Errorf("failed to create user: %w", dup)))

	assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateKey(errors.New("plain error")))
	assert.False(t, isDuplicateKey(nil))
}
