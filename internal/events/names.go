package events

// Storefront event names. They double as the action path segment of the
// forms the views render.
const (
	OpenCardPreview   = "openCardPreview"
	CloseModal        = "closeModal"
	AddToBasket       = "addToBasket"
	RemoveFromBasket  = "removeFromBasket"
	OpenBasketModal   = "openBasketModal"
	MakeOrder         = "makeOrder"
	OrderFormUpdate   = "orderFormUpdate"
	NextFormStep      = "nextFormStep"
	PrevFormStep      = "prevFormStep"
	ContactFormUpdate = "contactFormUpdate"
	FormSubmit        = "formSubmit"
	OrderSuccess      = "orderSuccess"
	BasketChanged     = "basketChanged"
)
