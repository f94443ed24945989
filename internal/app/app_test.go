package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/router"
	"github.com/abhisek/prepcoach/internal/screens/home"
	"github.com/abhisek/prepcoach/internal/store"
)

type fakeUsers struct{}

func (fakeUsers) Current(context.Context) (*store.User, error) {
	return &store.User{ExternalID: "local", Name: "Ada", Industry: "fintech"}, nil
}

func testModel() AppModel {
	return newAppModel(context.Background(), Options{
		Deps:   home.Deps{Users: fakeUsers{}},
		Status: "Ada · fintech",
	})
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command at root")
	}
}

func TestAppModel_EscPopsPushedScreen(t *testing.T) {
	m := testModel()
	m.router.Apply(router.NavMsg{Op: router.OpPush, Screen: home.New(context.Background(), home.Deps{Users: fakeUsers{}})})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if nav, ok := cmd().(router.NavMsg); !ok || nav.Op != router.OpPop {
		t.Error("expected a pop request")
	}
}

func TestAppModel_ViewShowsHeaderAndHints(t *testing.T) {
	updated, _ := testModel().Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	content := updated.(AppModel).render()
	for _, want := range []string{"PrepCoach", "Home", "Ada · fintech", "Navigate"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	updated, _ := testModel().Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "needs at least 60 x 20") {
		t.Error("expected min size message")
	}
}
