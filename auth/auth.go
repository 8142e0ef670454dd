package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/kv"
)

//Store keys
const (
	CredentialsKey = "sportiva_admin_credentials"
	SessionKey     = "sportiva_admin_session"
)

//DefaultPassword is used until the admin password is changed
const DefaultPassword = "admin123"

//Authenticator checks the admin password and tracks whether the admin is logged in
type Authenticator struct {
	store           kv.Store
	defaultPassword string

	//Cost is the bcrypt cost used when hashing passwords
	Cost int
}

//New returns a new Authenticator. defaultPassword is accepted until UpdatePassword is called;
//an empty defaultPassword means DefaultPassword
func New(store kv.Store, defaultPassword string) *Authenticator {
	if defaultPassword == "" {
		defaultPassword = DefaultPassword
	}
	return &Authenticator{store: store, defaultPassword: defaultPassword, Cost: 12}
}

func (a *Authenticator) hash() ([]byte, error) {
	hash, ok, err := a.store.GetItem(CredentialsKey)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if ok {
		return []byte(hash), nil
	}

	if err = a.UpdatePassword(a.defaultPassword); err != nil {
		return nil, err
	}

	hash, _, err = a.store.GetItem(CredentialsKey)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return []byte(hash), nil
}

//Login returns whether password is correct. On success the admin session flag is set
func (a *Authenticator) Login(password string) (bool, error) {
	hash, err := a.hash()
	if err != nil {
		return false, err
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return false, nil
	}

	if err = a.store.SetItem(SessionKey, "true"); err != nil {
		return false, fmt.Errorf("write session: %w", err)
	}
	return true, nil
}

//Logout clears the admin session flag
func (a *Authenticator) Logout() error {
	if err := a.store.RemoveItem(SessionKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

//IsAuthenticated returns whether the admin session flag is set
func (a *Authenticator) IsAuthenticated() (bool, error) {
	v, ok, err := a.store.GetItem(SessionKey)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	return ok && v == "true", nil
}

//UpdatePassword replaces the admin password
func (a *Authenticator) UpdatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.Cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err = a.store.SetItem(CredentialsKey, string(hash)); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
