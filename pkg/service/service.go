// Package service runs the command-line operations against the profile view
// and prints their results.
package service

import (
	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/client"
	"github.com/snapshare/cli/pkg/config"
	"github.com/snapshare/cli/pkg/formatter"
	"github.com/snapshare/cli/pkg/output"
	"github.com/snapshare/cli/pkg/profileview"
	"github.com/snapshare/cli/pkg/prompter"
	"github.com/snapshare/cli/pkg/session"
)

// Connector builds an API client that authenticates with sess
type Connector func(sess *session.Session) profileview.API

// Env bundles what every service needs for one command
type Env struct {
	Session *session.Session
	API     profileview.API
	Out     *formatter.Formatter
	Prompt  *prompter.Prompter
	Connect Connector
}

// DefaultConnector talks to api.base_url
func DefaultConnector(sess *session.Session) profileview.API {
	return api.NewFromConfig(client.New(client.OptionsFromConfig(), sess))
}

// NewEnv loads the stored session and wires the API client, stdout printer
// and stdin prompter
func NewEnv() (*Env, error) {
	sess, err := session.Load()
	if err != nil {
		return nil, err
	}
	return &Env{
		Session: sess,
		API:     DefaultConnector(sess),
		Out:     formatter.New(output.Default(), config.GetString("api.uploads_url")),
		Prompt:  prompter.Stdio(),
		Connect: DefaultConnector,
	}, nil
}

// View creates a profile view of subjectID as the logged-in viewer
func (e *Env) View(subjectID string) *profileview.View {
	return profileview.New(e.API, subjectID, e.Session.ViewerID())
}

func (e *Env) printer() *output.Printer {
	return e.Out.Printer()
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) > length && length > 3 {
		return string(r[:length-3]) + "..."
	}
	return s
}
