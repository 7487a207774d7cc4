package domain

// Action is an operation an actor attempts on a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// IsRead reports whether the action has no side effects.
func (a Action) IsRead() bool { return a == ActionList || a == ActionRetrieve }

// ResourceKind names the class of resource being acted on.
type ResourceKind string

const (
	ResourceCategory ResourceKind = "category"
	ResourceGenre    ResourceKind = "genre"
	ResourceTitle    ResourceKind = "title"
	ResourceReview   ResourceKind = "review"
	ResourceComment  ResourceKind = "comment"
	ResourceUser     ResourceKind = "user"
)

// Resource identifies the target of an action. OwnerID is the author of a
// review or comment, or the account itself for a user resource; zero when
// the action has no existing target (create, list).
type Resource struct {
	Kind    ResourceKind
	OwnerID int64
}

// Authorize decides whether actor may perform action on res. A nil actor is
// anonymous. It returns nil, ErrAuthenticationRequired or ErrPermissionDenied.
func Authorize(actor *User, action Action, res Resource) error {
	switch res.Kind {
	case ResourceCategory, ResourceGenre, ResourceTitle:
		if action.IsRead() {
			return nil
		}
		if actor == nil {
			return ErrAuthenticationRequired
		}
		if actor.IsAdmin() {
			return nil
		}
		return ErrPermissionDenied

	case ResourceReview, ResourceComment:
		if action.IsRead() {
			return nil
		}
		if actor == nil {
			return ErrAuthenticationRequired
		}
		if action == ActionCreate {
			return nil
		}
		if actor.ID == res.OwnerID || actor.IsModerator() {
			return nil
		}
		return ErrPermissionDenied

	case ResourceUser:
		if actor == nil {
			return ErrAuthenticationRequired
		}
		if actor.IsAdmin() {
			return nil
		}
		self := res.OwnerID != 0 && actor.ID == res.OwnerID
		if self && (action == ActionRetrieve || action == ActionUpdate) {
			return nil
		}
		return ErrPermissionDenied
	}
	return ErrPermissionDenied
}

// Can is the boolean form of Authorize.
func Can(actor *User, action Action, res Resource) bool {
	return Authorize(actor, action, res) == nil
}

// Overrides reports whether actor acted on content owned by someone else,
// which only moderators and admins are allowed to do.
func Overrides(actor *User, res Resource) bool {
	return actor != nil && res.OwnerID != 0 && actor.ID != res.OwnerID
}
