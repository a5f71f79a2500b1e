package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jonboulle/clockwork"

	"github.com/edgard/birthdaybot/internal/config"
	"github.com/edgard/birthdaybot/internal/database"
	"github.com/edgard/birthdaybot/internal/people"
	"github.com/edgard/birthdaybot/internal/reachability"
	"github.com/edgard/birthdaybot/internal/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// apiCall is one request received by the fake Bot API.
type apiCall struct {
	Method string
	Params map[string]string
}

// fakeAPI records Bot API calls and answers them successfully.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)
	params := map[string]string{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			for k, v := range r.MultipartForm.Value {
				if len(v) > 0 {
					params[k] = v[0]
				}
			}
		}
	} else if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		var raw map[string]any
		if json.Unmarshal(body, &raw) == nil {
			for k, v := range raw {
				if s, ok := v.(string); ok {
					params[k] = s
				} else {
					b, _ := json.Marshal(v)
					params[k] = string(b)
				}
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Params: params})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "sendMessage":
		chatID := params["chat_id"]
		if chatID == "" {
			chatID = "0"
		}
		_, _ = fmt.Fprintf(w, `{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":%s,"type":"private"}}}`, chatID)
	case "getMe":
		_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Birthday","username":"birthday_bot"}}`)
	default:
		_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
	}
}

// sent returns the sendMessage calls in order.
func (f *fakeAPI) sent() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == "sendMessage" {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	sent := f.sent()
	if len(sent) == 0 {
		t.Fatal("no message was sent")
	}
	return sent[len(sent)-1].Params["text"]
}

func (f *fakeAPI) lastMarkup(t *testing.T) string {
	t.Helper()
	sent := f.sent()
	if len(sent) == 0 {
		t.Fatal("no message was sent")
	}
	return sent[len(sent)-1].Params["reply_markup"]
}

type testEnv struct {
	api  *fakeAPI
	bot  *bot.Bot
	deps HandlerDeps
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	b, err := bot.New("123456:test-token", bot.WithSkipGetMe(), bot.WithServerURL(srv.URL))
	if err != nil {
		t.Fatalf("bot.New() error = %v", err)
	}

	db, err := database.NewDB(filepath.Join(t.TempDir(), "handlers.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	cfg := &config.Config{Messages: config.DefaultMessages}
	store := database.NewStore(db, discard)

	return &testEnv{
		api: api,
		bot: b,
		deps: HandlerDeps{
			Logger:    discard,
			Config:    cfg,
			People:    people.NewService(store, clockwork.NewFakeClockAt(now), discard),
			Sessions:  session.NewStore(),
			Reachable: reachability.New(),
		},
	}
}

func textUpdate(userID int64, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   1,
			From: &models.User{ID: userID, FirstName: "Test"},
			Chat: models.Chat{ID: userID},
			Text: text,
		},
	}
}

func callbackUpdate(userID int64, data string) *models.Update {
	return &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: userID, FirstName: "Test"},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   10,
					Chat: models.Chat{ID: userID},
				},
			},
			Data: data,
		},
	}
}

func (e *testEnv) run(h bot.HandlerFunc, update *models.Update) {
	h(context.Background(), e.bot, update)
}
