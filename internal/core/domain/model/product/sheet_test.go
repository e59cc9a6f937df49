package product_test

import (
	"testing"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromSheetRow_ParsesEveryColumn(t *testing.T) {
	row := []string{" srv-mg996r ", "MG996R Servo", "", "Motors", "TowerPro", "1,450.50", "1500", "42",
		"servo|Metal Gear|servo", "https://cdn.test/a.jpg|https://cdn.test/b.jpg", "no"}

	f, err := product.FieldsFromSheetRow(row)

	require.NoError(t, err)
	assert.Equal(t, "SRV-MG996R", f.SKU)
	assert.Equal(t, "mg996r-servo", f.Slug)
	assert.Equal(t, "motors", f.Category)
	assert.Equal(t, kernel.MustMoney(145050), f.Price)
	assert.Equal(t, kernel.MustMoney(150000), f.CompareAtPrice)
	assert.Equal(t, 42, f.Stock)
	assert.Equal(t, []string{"servo", "metal gear"}, f.Tags)
	assert.Len(t, f.ImageURLs, 2)
	assert.False(t, f.Active)
}

func TestFieldsFromSheetRow_ShortRowDefaults(t *testing.T) {
	f, err := product.FieldsFromSheetRow([]string{"ARD-UNO", "Arduino Uno", "", "boards", "", "900"})

	require.NoError(t, err)
	assert.Equal(t, 0, f.Stock)
	assert.True(t, f.Active)
	assert.Empty(t, f.Tags)
}

func TestFieldsFromSheetRow_ReportsBadCells(t *testing.T) {
	_, err := product.FieldsFromSheetRow([]string{"X1", "Thing", "", "", "", "abc", "", "many", "", "", "maybe"})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "price")
	assert.Contains(t, err.Error(), "stock")
	assert.Contains(t, err.Error(), "active")
}

func TestFieldsFromSheetRow_DomainRulesApply(t *testing.T) {
	_, err := product.FieldsFromSheetRow([]string{"", "", "", "", "", "10", "5"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sku")
	assert.Contains(t, err.Error(), "compare at price")
}

func TestSheetRow_RoundTripsThroughParser(t *testing.T) {
	p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), product.Fields{
		SKU: "LDR-5MM", Name: "LDR 5mm", Category: "sensors", Price: kernel.MustMoney(1505),
		Stock: 300, Tags: []string{"light", "analog"}, Active: true,
	}, now)
	require.NoError(t, err)

	row := p.SheetRow()
	assert.Equal(t, []string{"LDR-5MM", "LDR 5mm", "ldr-5mm", "sensors", "", "15.05", "", "300",
		"light|analog", "", "true"}, row)

	f, err := product.FieldsFromSheetRow(row)
	require.NoError(t, err)
	assert.Equal(t, p.Fields().Price, f.Price)
	assert.Equal(t, p.Fields().Tags, f.Tags)
}

func TestCheckSheetHeader(t *testing.T) {
	require.NoError(t, product.CheckSheetHeader([]string{"SKU", "name", "slug", "category", "brand", "price",
		"compare_at_price", "stock", "tags", "image_urls", " active "}))

	err := product.CheckSheetHeader([]string{"name", "sku"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	err = product.CheckSheetHeader([]string{"sku", "title", "slug", "category", "brand", "price",
		"compare_at_price", "stock", "tags", "image_urls", "active"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "column 2")
}
