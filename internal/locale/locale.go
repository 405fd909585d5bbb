// Package locale renders the user facing texts of the bot.
package locale

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/janosik-bot/janosik/internal/model"
)

type messages struct {
	noInput  string
	timeout  string
	notFound string
	noOutput string
	crash    string
	other    string

	protipAdded     string
	protipRemoved   string
	invalidProtipID string
	noTasks         string
	tasksHeader     string
	protipsHeader   string
	noProtips       string
}

var catalogs = map[string]messages{
	"pl": {
		noInput:  "Brak wejścia, podaj je w bloku ```kodu```",
		timeout:  "`%s` działał zbyt długo, sprawdź poprawność wejścia",
		notFound: "Nie znaleziono ` %s `",
		noOutput: "`%s` nic nie wypisał, sprawdź poprawność wejścia",
		crash:    "`%s` wysypał się, sprawdź poprawność wejścia",
		other:    "Coś poszło nie tak z `%s`: %s",

		protipAdded:     "Dodano protip do `%s`: %s",
		protipRemoved:   "Usunięto protip %d",
		invalidProtipID: "Niepoprawny numer protipa",
		noTasks:         "Brak protipów",
		tasksHeader:     "Zadania z protipami:\n",
		protipsHeader:   "Protipy `%s`:\n",
		noProtips:       "Brak protipów dla `%s`",
	},
	"en": {
		noInput:  "No input, put it inside a ```code``` block",
		timeout:  "`%s` ran for too long, check your input",
		notFound: "Could not find ` %s `",
		noOutput: "`%s` printed nothing, check your input",
		crash:    "`%s` crashed, check your input",
		other:    "Something went wrong with `%s`: %s",

		protipAdded:     "Added protip to `%s`: %s",
		protipRemoved:   "Removed protip %d",
		invalidProtipID: "Invalid protip number",
		noTasks:         "There are no protips",
		tasksHeader:     "Tasks with protips:\n",
		protipsHeader:   "Protips for `%s`:\n",
		noProtips:       "There are no protips for `%s`",
	},
}

// Languages returns the supported languages.
func Languages() []string {
	langs := make([]string, 0, len(catalogs))
	for l := range catalogs {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

// Catalog renders messages in a single language.
type Catalog struct {
	lang string
	msgs messages
}

// New returns the catalog of a language.
func New(lang string) (*Catalog, error) {
	msgs, ok := catalogs[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q: %w", lang, model.ErrNotValid)
	}
	return &Catalog{lang: lang, msgs: msgs}, nil
}

// Language returns the catalog language.
func (c *Catalog) Language() string { return c.lang }

// RunMessage renders the reply for a failed run of program.
func (c *Catalog) RunMessage(program string, err error) string {
	kind, ok := model.FailureKindOf(err)
	if !ok {
		return fmt.Sprintf(c.msgs.other, program, err)
	}

	switch kind {
	case model.FailureNoInput:
		return c.msgs.noInput
	case model.FailureTimeout:
		return fmt.Sprintf(c.msgs.timeout, program)
	case model.FailureNotFound:
		return fmt.Sprintf(c.msgs.notFound, program)
	case model.FailureNoOutput:
		return fmt.Sprintf(c.msgs.noOutput, program)
	case model.FailureCrash:
		return fmt.Sprintf(c.msgs.crash, program)
	case model.FailureOther:
		var runErr *model.RunError
		if errors.As(err, &runErr) && runErr.Message != "" {
			return fmt.Sprintf(c.msgs.other, program, runErr.Message)
		}
	}

	return fmt.Sprintf(c.msgs.other, program, err)
}

// Fence wraps program output in a code block.
func (c *Catalog) Fence(output string) string {
	return "```\n" + strings.TrimSuffix(output, "\n") + "\n```"
}

// ProtipAdded renders the confirmation of a new protip.
func (c *Catalog) ProtipAdded(p model.Protip) string {
	return fmt.Sprintf(c.msgs.protipAdded, p.Task, p.Content)
}

// ProtipRemoved renders the confirmation of a removed protip.
func (c *Catalog) ProtipRemoved(id int64) string {
	return fmt.Sprintf(c.msgs.protipRemoved, id)
}

// InvalidProtipID renders the reply for a protip number that can't be parsed.
func (c *Catalog) InvalidProtipID() string { return c.msgs.invalidProtipID }

// Tasks renders the list of tasks that have protips.
func (c *Catalog) Tasks(tasks []string) string {
	if len(tasks) == 0 {
		return c.msgs.noTasks
	}

	var b strings.Builder
	b.WriteString(c.msgs.tasksHeader)
	for _, t := range tasks {
		fmt.Fprintf(&b, "\t`%s`\n", t)
	}
	return b.String()
}

// Protips renders the protips of a task.
func (c *Catalog) Protips(task string, protips []model.Protip) string {
	if len(protips) == 0 {
		return fmt.Sprintf(c.msgs.noProtips, task)
	}

	var b strings.Builder
	fmt.Fprintf(&b, c.msgs.protipsHeader, task)
	for _, p := range protips {
		fmt.Fprintf(&b, "\t%s\n", p)
	}
	return b.String()
}
