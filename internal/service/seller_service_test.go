package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
)

func sellerInput(username, phone, idCard string) SellerInput {
	return SellerInput{
		Username:  username,
		Password:  testPassword,
		Email:     username + "@momshop.cm",
		FirstName: "Paul",
		LastName:  "Biya",
		Profile: seller.Profile{
			Phone:        phone,
			IDCardNumber: idCard,
			Salary:       decimal.NewFromInt(80000),
		},
	}
}

func TestSellerService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   SellerInput
		wantErr error
	}{
		{name: "valid", input: sellerInput("lena", "699000009", "CNI-9")},
		{name: "duplicate username", input: sellerInput("paul", "699000009", ""), wantErr: user.ErrDuplicateUsername},
		{name: "duplicate phone", input: sellerInput("lena", "699000001", ""), wantErr: seller.ErrDuplicatePhone},
		{name: "duplicate id card", input: sellerInput("lena", "699000009", "CNI-1"), wantErr: seller.ErrDuplicateIDCard},
		{name: "missing phone", input: sellerInput("lena", "", ""), wantErr: seller.ErrEmptyPhone},
		{
			name: "short password",
			input: func() SellerInput {
				in := sellerInput("lena", "699000009", "")
				in.Password = "short"
				return in
			}(),
			wantErr: user.ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewSellerService(f.store, f.log)
			_, err := svc.Create(f.ctx, sellerInput("paul", "699000001", "CNI-1"))
			require.NoError(t, err)

			got, err := svc.Create(f.ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, err := f.store.Repos().Users.FindByUsername(f.ctx, "lena")
				assert.ErrorIs(t, err, user.ErrUserNotFound, "user must not outlive a failed seller creation")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.IsActive)
			assert.Equal(t, "lena", got.Username)
			assert.Equal(t, "Paul", got.FirstName)

			u, err := f.store.Repos().Users.FindByUsername(f.ctx, "lena")
			require.NoError(t, err)
			assert.Equal(t, user.RoleSeller, u.Role)
			assert.True(t, u.CheckPassword(testPassword))
		})
	}
}

func TestSellerService_UpdateAndToggle(t *testing.T) {
	f := newFixture(t)
	svc := NewSellerService(f.store, f.log)
	paul, err := svc.Create(f.ctx, sellerInput("paul", "699000001", ""))
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, sellerInput("lena", "699000002", ""))
	require.NoError(t, err)

	in := sellerInput("ignored", "699000002", "")
	_, err = svc.Update(f.ctx, paul.ID, in)
	assert.ErrorIs(t, err, seller.ErrDuplicatePhone)

	in.Profile.Phone = "699000003"
	in.FirstName = "Pierre"
	updated, err := svc.Update(f.ctx, paul.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "699000003", updated.Phone)
	assert.Equal(t, "Pierre", updated.FirstName)
	assert.Equal(t, "paul", updated.Username, "username is not editable")

	off, err := svc.ToggleActive(f.ctx, paul.ID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	u, err := f.store.Repos().Users.FindByID(f.ctx, off.UserID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	active, err := svc.List(f.ctx, seller.Filter{Status: seller.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "lena", active[0].Username)

	found, err := svc.List(f.ctx, seller.Filter{Search: "PIERRE"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	on, err := svc.ToggleActive(f.ctx, paul.ID)
	require.NoError(t, err)
	assert.True(t, on.IsActive)

	_, err = svc.ToggleActive(f.ctx, "missing")
	assert.ErrorIs(t, err, seller.ErrSellerNotFound)
}
