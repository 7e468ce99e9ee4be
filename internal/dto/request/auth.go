package request

type LoginRequest struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,max=72"`
}
