package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyanbhambhani/rltr/internal/model"
)

func TestCreateContact_ListColumnsRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	org := seedOrg(t, s, "Org A")

	c := &model.Contact{
		Name:       "Dana Buyer",
		Emails:     model.StringList{"dana@example.com", "dana@work.example.com"},
		Phones:     model.StringList{"+15105550100"},
		Tags:       model.StringList{"buyer", "hot-lead"},
		TelegramID: strPtr("@dana"),
	}
	require.NoError(t, s.CreateContact(ctx, org.ID, c))

	got, err := s.GetContact(ctx, org.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"dana@example.com", "dana@work.example.com"}, got.Emails)
	assert.Equal(t, model.StringList{"+15105550100"}, got.Phones)
	assert.Equal(t, model.StringList{"buyer", "hot-lead"}, got.Tags)
	require.NotNil(t, got.TelegramID)
	assert.Equal(t, "@dana", *got.TelegramID)
}

func TestCreateContact_EmptyListsNotNull(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	org := seedOrg(t, s, "Org A")

	c := &model.Contact{Name: "Sam Seller"}
	require.NoError(t, s.CreateContact(ctx, org.ID, c))

	got, err := s.GetContact(ctx, org.ID, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Emails)
	assert.Empty(t, got.Emails)
	assert.NotNil(t, got.Tags)
}

func TestListContacts_TagFilterAndIsolation(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	orgA := seedOrg(t, s, "Org A")
	orgB := seedOrg(t, s, "Org B")

	buyer := &model.Contact{Name: "Dana Buyer", Tags: model.StringList{"buyer"}}
	require.NoError(t, s.CreateContact(ctx, orgA.ID, buyer))
	seller := &model.Contact{Name: "Sam Seller", Tags: model.StringList{"seller"}}
	require.NoError(t, s.CreateContact(ctx, orgA.ID, seller))
	require.NoError(t, s.CreateContact(ctx, orgB.ID, &model.Contact{Name: "Other Org", Tags: model.StringList{"buyer"}}))

	contacts, err := s.ListContacts(ctx, orgA.ID, ContactFilter{Tag: "buyer"})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, buyer.ID, contacts[0].ID)
}

func TestUpdateContact_Partial(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	org := seedOrg(t, s, "Org A")

	c := &model.Contact{Name: "Dana Buyer", Tags: model.StringList{"buyer"}}
	require.NoError(t, s.CreateContact(ctx, org.ID, c))

	updated, err := s.UpdateContact(ctx, org.ID, c.ID, map[string]interface{}{
		"name": "Dana B. Buyer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana B. Buyer", updated.Name)
	assert.Equal(t, model.StringList{"buyer"}, updated.Tags)
}
