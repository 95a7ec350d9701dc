package bdd

import (
	"context"
	"fmt"
	"os"
	"testing"

	"video_sharing_service/internal/account/domain"
	"video_sharing_service/pkg/encrypt"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/token"

	"github.com/cucumber/godog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFeatures(t *testing.T) {
	logger.SetNewNop()

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Paths:  []string{"./featureFiles"},
			Format: "pretty",
			Output: os.Stdout,
		},
	}

	if suite.Run() != 0 {
		t.Fail()
	}
}

func InitializeScenario(s *godog.ScenarioContext) {
	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		registeredUsers = map[string]*domain.User{}
		lastError = nil
		lastToken = ""
		return ctx, nil
	})

	s.Step(`^no account exists for "([^"]*)"$`, noAccountExistsFor)
	s.Step(`^an account "([^"]*)" with password "([^"]*)" exists$`, anAccountWithPasswordExists)
	s.Step(`^I register "([^"]*)" with email "([^"]*)" and password "([^"]*)"$`, iRegisterWithEmailAndPassword)
	s.Step(`^I log in with "([^"]*)" and "([^"]*)"$`, iLogInWithAnd)
	s.Step(`^the request should succeed$`, theRequestShouldSucceed)
	s.Step(`^the request should fail with "([^"]*)"$`, theRequestShouldFailWith)
	s.Step(`^I should receive a token that identifies the account$`, iShouldReceiveATokenThatIdentifiesTheAccount)
}

// In-memory account store standing in for the Mongo-backed repository.
var registeredUsers = map[string]*domain.User{}
var lastError error
var lastToken string

func noAccountExistsFor(email string) error {
	delete(registeredUsers, email)
	return nil
}

func anAccountWithPasswordExists(email, password string) error {
	hashed, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}
	registeredUsers[email] = &domain.User{
		ID:       primitive.NewObjectID(),
		Username: email,
		Email:    email,
		Password: hashed,
	}
	return nil
}

func iRegisterWithEmailAndPassword(username, email, password string) error {
	lastError = nil
	if _, taken := registeredUsers[email]; taken {
		lastError = fmt.Errorf("email already exists")
		return nil
	}
	if err := encrypt.ValidatePasswordStrength(password); err != nil {
		lastError = err
		return nil
	}
	hashed, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}
	registeredUsers[email] = &domain.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Email:    email,
		Password: hashed,
	}
	return nil
}

func iLogInWithAnd(email, password string) error {
	lastError = nil
	lastToken = ""

	user, found := registeredUsers[email]
	if !found {
		lastError = fmt.Errorf("user not found")
		return nil
	}
	if err := user.IsPasswordMatch(password); err != nil {
		lastError = fmt.Errorf("wrong password")
		return nil
	}

	jwt, err := token.GenerateJWT(user.ID.Hex(), "bdd")
	if err != nil {
		return err
	}
	lastToken = jwt
	return nil
}

func theRequestShouldSucceed() error {
	if lastError != nil {
		return fmt.Errorf("expected success, got %v", lastError)
	}
	return nil
}

func theRequestShouldFailWith(expected string) error {
	if lastError == nil {
		return fmt.Errorf("expected failure %q, request succeeded", expected)
	}
	if lastError.Error() != expected {
		return fmt.Errorf("expected failure %q, got %q", expected, lastError.Error())
	}
	return nil
}

func iShouldReceiveATokenThatIdentifiesTheAccount() error {
	if lastToken == "" {
		return fmt.Errorf("no token received")
	}
	if _, err := token.ParseJWT(lastToken); err != nil {
		return fmt.Errorf("token does not parse: %w", err)
	}
	return nil
}
