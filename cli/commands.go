package cli

import (
	"errors"

	"github.com/goliatone/go-userstore/command"
	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/goliatone/go-userstore/query"
)

const (
	msgInitialized    = "Database Initialized"
	msgNotFound       = "%s not found!"
	msgNoUsers        = "No users found"
	msgEmailNotFound  = "%s not found! Unable to update email."
	msgEmailUpdated   = "Updated %s's email to %s"
	msgTaken          = "Username or email already taken!"
	msgDeleteNotFound = "%s not found! Unable to delete user."
	msgDeleted        = "%s deleted"
	msgNoMatches      = "No matching users found."
	msgNoUsersInPage  = "No users found."
)

// InitializeCmd recreates the schema and inserts the seed user.
type InitializeCmd struct{}

// Run executes the initialize command.
func (c *InitializeCmd) Run(app *App) error {
	if err := app.service.Commands().Initialize.Execute(app.ctx, command.InitializeInput{}); err != nil {
		return err
	}
	app.println(msgInitialized)
	return nil
}

// GetUserCmd prints one user by username.
type GetUserCmd struct {
	Username string `arg:"" help:"Username to look up."`
}

// Run reports an unknown username as not found.
func (c *GetUserCmd) Run(app *App) error {
	user, err := app.service.Queries().UserGet.Query(app.ctx, query.UserGetInput{Username: c.Username})
	if errors.Is(err, types.ErrUserNotFound) {
		app.printf(msgNotFound, c.Username)
		return nil
	}
	if err != nil {
		return err
	}
	app.println(user)
	return nil
}

// GetAllUsersCmd prints every user ordered by id.
type GetAllUsersCmd struct{}

// Run executes the get-all-users command.
func (c *GetAllUsersCmd) Run(app *App) error {
	users, err := app.service.Queries().UserListAll.Query(app.ctx, query.UserListAllInput{})
	if err != nil {
		return err
	}
	app.printUsers(users, msgNoUsers)
	return nil
}

// ChangeEmailCmd replaces a user's email.
type ChangeEmailCmd struct {
	Username string `arg:"" help:"Username of the user to update."`
	NewEmail string `arg:"" name:"new-email" help:"Replacement email address."`
}

// Run reports an unknown user. A duplicate email is not trapped and fails the
// command.
func (c *ChangeEmailCmd) Run(app *App) error {
	var updated types.User
	err := app.service.Commands().UserChangeEmail.Execute(app.ctx, command.UserChangeEmailInput{
		Username: c.Username,
		Email:    c.NewEmail,
		Result:   &updated,
	})
	if errors.Is(err, types.ErrUserNotFound) {
		app.printf(msgEmailNotFound, c.Username)
		return nil
	}
	if err != nil {
		return err
	}
	app.printf(msgEmailUpdated, updated.Username, updated.Email)
	return nil
}

// CreateUserCmd inserts a user and prints it with its generated id.
type CreateUserCmd struct {
	Username string `arg:"" help:"Unique username."`
	Email    string `arg:"" help:"Unique email address."`
	Password string `arg:"" help:"Password, stored as given."`
}

// Run reports a taken username or email instead of failing.
func (c *CreateUserCmd) Run(app *App) error {
	var created types.User
	err := app.service.Commands().UserCreate.Execute(app.ctx, command.UserCreateInput{
		Username: c.Username,
		Email:    c.Email,
		Password: c.Password,
		Result:   &created,
	})
	if errors.Is(err, types.ErrUserExists) {
		app.println(msgTaken)
		return nil
	}
	if err != nil {
		return err
	}
	app.println(created)
	return nil
}

// DeleteUserCmd removes a user by username.
type DeleteUserCmd struct {
	Username string `arg:"" help:"Username of the user to delete."`
}

// Run reports an unknown username as not found.
func (c *DeleteUserCmd) Run(app *App) error {
	err := app.service.Commands().UserDelete.Execute(app.ctx, command.UserDeleteInput{Username: c.Username})
	if errors.Is(err, types.ErrUserNotFound) {
		app.printf(msgDeleteNotFound, c.Username)
		return nil
	}
	if err != nil {
		return err
	}
	app.printf(msgDeleted, c.Username)
	return nil
}

// SearchUserCmd prints users whose username or email contains the query.
type SearchUserCmd struct {
	Query string `arg:"" help:"Substring matched against usernames and emails."`
}

// Run executes the search-user command.
func (c *SearchUserCmd) Run(app *App) error {
	users, err := app.service.Queries().UserSearch.Query(app.ctx, query.UserSearchInput{Query: c.Query})
	if err != nil {
		return err
	}
	app.printUsers(users, msgNoMatches)
	return nil
}

// ListUsersCmd prints one page of users ordered by id.
type ListUsersCmd struct {
	Limit  int `default:"${default_limit}" help:"Maximum number of users to print."`
	Offset int `default:"0" help:"Number of users to skip."`
}

// Run rejects a negative limit or offset. A zero limit prints the empty-page
// message.
func (c *ListUsersCmd) Run(app *App) error {
	users, err := app.service.Queries().UserPage.Query(app.ctx, query.UserPageInput{
		Pagination: types.Pagination{Limit: c.Limit, Offset: c.Offset},
	})
	if err != nil {
		return err
	}
	app.printUsers(users, msgNoUsersInPage)
	return nil
}

func (a *App) printUsers(users []types.User, empty string) {
	if len(users) == 0 {
		a.println(empty)
		return
	}
	for _, user := range users {
		a.println(user)
	}
}
