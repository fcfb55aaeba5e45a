package repoargs

type CreateAccount struct {
	Name              string
	Email             string
	EncryptedPassword string
}
