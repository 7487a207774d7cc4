package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Ranking(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleModerator))
	assert.True(t, RoleModerator.AtLeast(RoleUser))
	assert.True(t, RoleUser.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.False(t, Role("root").AtLeast(RoleUser))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Moderator ")
	assert.NoError(t, err)
	assert.Equal(t, RoleModerator, r)

	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUser_StaffFlagsAreAdmin(t *testing.T) {
	staff := &User{Role: RoleUser, IsStaff: true}
	super := &User{Role: RoleUser, IsSuperuser: true}
	mod := &User{Role: RoleModerator}

	assert.True(t, staff.IsAdmin())
	assert.True(t, super.IsModerator())
	assert.False(t, mod.IsAdmin())
	assert.True(t, mod.IsModerator())
}

func TestAuthorize(t *testing.T) {
	author := &User{ID: 1, Role: RoleUser}
	other := &User{ID: 2, Role: RoleUser}
	mod := &User{ID: 3, Role: RoleModerator}
	admin := &User{ID: 4, Role: RoleAdmin}
	staff := &User{ID: 5, Role: RoleUser, IsStaff: true}

	review := Resource{Kind: ResourceReview, OwnerID: author.ID}
	comment := Resource{Kind: ResourceComment, OwnerID: author.ID}
	title := Resource{Kind: ResourceTitle}

	tests := []struct {
		name   string
		actor  *User
		action Action
		res    Resource
		want   error
	}{
		{"anonymous lists titles", nil, ActionList, title, nil},
		{"anonymous retrieves category", nil, ActionRetrieve, Resource{Kind: ResourceCategory}, nil},
		{"anonymous reads review", nil, ActionRetrieve, review, nil},
		{"anonymous creates title", nil, ActionCreate, title, ErrAuthenticationRequired},
		{"anonymous creates review", nil, ActionCreate, Resource{Kind: ResourceReview}, ErrAuthenticationRequired},
		{"user creates genre", author, ActionCreate, Resource{Kind: ResourceGenre}, ErrPermissionDenied},
		{"moderator deletes title", mod, ActionDelete, title, ErrPermissionDenied},
		{"admin updates title", admin, ActionUpdate, title, nil},
		{"staff deletes category", staff, ActionDelete, Resource{Kind: ResourceCategory}, nil},
		{"user creates review", other, ActionCreate, Resource{Kind: ResourceReview}, nil},
		{"author updates review", author, ActionUpdate, review, nil},
		{"author deletes comment", author, ActionDelete, comment, nil},
		{"stranger updates review", other, ActionUpdate, review, ErrPermissionDenied},
		{"stranger deletes comment", other, ActionDelete, comment, ErrPermissionDenied},
		{"moderator deletes review", mod, ActionDelete, review, nil},
		{"admin updates comment", admin, ActionUpdate, comment, nil},
		{"user reads self", author, ActionRetrieve, Resource{Kind: ResourceUser, OwnerID: author.ID}, nil},
		{"user updates self", author, ActionUpdate, Resource{Kind: ResourceUser, OwnerID: author.ID}, nil},
		{"user deletes self", author, ActionDelete, Resource{Kind: ResourceUser, OwnerID: author.ID}, ErrPermissionDenied},
		{"user lists users", author, ActionList, Resource{Kind: ResourceUser}, ErrPermissionDenied},
		{"moderator reads other user", mod, ActionRetrieve, Resource{Kind: ResourceUser, OwnerID: author.ID}, ErrPermissionDenied},
		{"admin deletes user", admin, ActionDelete, Resource{Kind: ResourceUser, OwnerID: author.ID}, nil},
		{"anonymous reads users", nil, ActionList, Resource{Kind: ResourceUser}, ErrAuthenticationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.res)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.True(t, Can(tt.actor, tt.action, tt.res))
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, Can(tt.actor, tt.action, tt.res))
		})
	}
}

func TestAuthenticationRequired_IsPermissionDenied(t *testing.T) {
	assert.True(t, errors.Is(ErrAuthenticationRequired, ErrPermissionDenied))
}

func TestOverrides(t *testing.T) {
	mod := &User{ID: 3, Role: RoleModerator}
	assert.True(t, Overrides(mod, Resource{Kind: ResourceReview, OwnerID: 1}))
	assert.False(t, Overrides(mod, Resource{Kind: ResourceReview, OwnerID: 3}))
	assert.False(t, Overrides(nil, Resource{Kind: ResourceReview, OwnerID: 1}))
}
