package types

// Todo is a single to-do item. OwnerID is assigned from the caller's token
// on creation and never changes afterwards.
type Todo struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Priority    int    `json:"priority" db:"priority"`
	Complete    bool   `json:"complete" db:"complete"`
	OwnerID     int    `json:"owner_id" db:"owner_id"`
}

// TodoRequest is the create/update payload. It carries no owner field;
// any owner sent by a client is dropped during decoding.
type TodoRequest struct {
	Title       string `json:"title" validate:"min=3"`
	Description string `json:"description" validate:"min=3,max=100"`
	Priority    int    `json:"priority" validate:"gt=0,lt=6"`
	Complete    *bool  `json:"complete" validate:"required"`
}
