package partners

// AddressPayload carries one address in create and update requests.
type AddressPayload struct {
	Street     string `json:"street" validate:"required,max=200"`
	Street2    string `json:"street2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postalCode" validate:"max=20"`
}

// CreatePartyRequest is shared by customer and supplier creation.
type CreatePartyRequest struct {
	Name      string           `json:"name" validate:"required,max=200"`
	Email     string           `json:"email" validate:"omitempty,email"`
	Phone     string           `json:"phone" validate:"max=20"`
	Addresses []AddressPayload `json:"addresses" validate:"dive"`
}

// UpdatePartyRequest carries partial updates to the scalar fields.
// Addresses are managed through the sub-collection endpoints.
type UpdatePartyRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

// ListPartiesRequest holds list filters for both entity kinds.
type ListPartiesRequest struct {
	Search string
	Page   int
	Limit  int
}
