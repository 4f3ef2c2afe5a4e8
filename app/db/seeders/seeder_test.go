package seeders

import (
	"testing"

	"github.com/Rakhulsr/go-motoshop/app/db/testdb"
	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSeed(t *testing.T) {
	db := testdb.New(t)
	opts := DefaultOptions()
	opts.CustomerAccounts = 1

	require.NoError(t, DBSeed(db, opts))

	var admin models.User
	require.NoError(t, db.Where("email = ?", opts.AdminEmail).First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.True(t, helpers.PasswordCompare(admin.Password, []byte(opts.AdminPassword)))

	var categories []models.Category
	require.NoError(t, db.Find(&categories).Error)
	byType := map[string]int{}
	for _, c := range categories {
		byType[c.Type]++
		if c.ParentID != nil {
			var parent models.Category
			require.NoError(t, db.First(&parent, "id = ?", *c.ParentID).Error)
			assert.Equal(t, c.Type, parent.Type)
		}
	}
	assert.Equal(t, 10, byType[models.CategoryTypeProduct])
	assert.Equal(t, 6, byType[models.CategoryTypeService])
	assert.Equal(t, 6, byType[models.CategoryTypeNews])

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.EqualValues(t, 5*opts.ProductsPerLeaf, products)

	var images int64
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&images).Error)
	assert.GreaterOrEqual(t, images, products)

	// second run is a no-op
	require.NoError(t, DBSeed(db, opts))
	var again int64
	require.NoError(t, db.Model(&models.Product{}).Count(&again).Error)
	assert.Equal(t, products, again)
}
