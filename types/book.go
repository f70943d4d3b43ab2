package types

// Book is an entry of the in-memory books catalogue.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate int    `json:"published_date"`
}

// BookRequest is the create/update payload. ID is ignored on create and
// selects the book to replace on update.
type BookRequest struct {
	ID            *int   `json:"id"`
	Title         string `json:"title" validate:"min=1"`
	Author        string `json:"author" validate:"min=1"`
	Description   string `json:"description" validate:"min=1,max=100"`
	Rating        int    `json:"rating" validate:"gt=0,lt=6"`
	PublishedDate int    `json:"published_date" validate:"gte=1900,lte=2100"`
}
