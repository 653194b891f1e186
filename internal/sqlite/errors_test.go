package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

func TestTranslateConstraint(t *testing.T) {
	b := setupBackend(t)
	mustAddAllergen(t, b, "Nuts")

	_, err := b.db.Exec("INSERT INTO allergens (allergen_id, name, created_at) VALUES ('x', 'Nuts', '')")
	assert.ErrorIs(t, translateConstraint(err, types.ErrDuplicateName), types.ErrDuplicateName)

	_, err = b.db.Exec("INSERT INTO cart (cart_item_id, flavor_id, quantity, created_at) VALUES ('c', 'nope', 1, '')")
	assert.ErrorIs(t, translateConstraint(err, types.ErrDuplicateName), types.ErrConstraint)

	plain := errors.New("disk on fire")
	assert.Equal(t, plain, translateConstraint(plain, types.ErrDuplicateName))
	assert.NoError(t, translateConstraint(nil, types.ErrDuplicateName))
}
