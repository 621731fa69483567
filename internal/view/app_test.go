package view

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"

	"golang.org/x/net/html/atom"
)

func newTestApp(t *testing.T, fragment string, opts Options) (*App, *Document, *MemoryNavigator) {
	t.Helper()
	doc := NewDocument("test")
	nav := NewMemoryNavigator(fragment)
	app := NewApp(doc, catalog.Default(), nav, opts)
	app.Start()
	return app, doc, nav
}

func heading(t *testing.T, doc *Document) string {
	t.Helper()
	h := FindAll(doc.Root(), atom.H1)
	if len(h) != 1 {
		t.Fatalf("h1 count = %d, want 1", len(h))
	}
	return TextContent(h[0])
}

func description(t *testing.T, doc *Document) string {
	t.Helper()
	ps := FindAll(doc.Root(), atom.P)
	if len(ps) != 1 {
		t.Fatalf("p count = %d, want 1", len(ps))
	}
	return TextContent(ps[0])
}

func submit(app *App, value string) {
	app.Dispatch(InputChanged{Value: value})
	app.Dispatch(SubmitPressed{})
}

func TestStart_EmptyFragmentGoesHome(t *testing.T) {
	t.Parallel()

	app, doc, nav := newTestApp(t, "", Options{})

	if got := nav.Fragment(); got != "/" {
		t.Fatalf("fragment = %q, want /", got)
	}
	if r, ok := app.Current(); !ok || r.Kind != route.Home {
		t.Fatalf("current = %+v, %v; want home", r, ok)
	}
	if FindByID(doc.Root(), InputID) == nil {
		t.Fatal("home input not mounted")
	}
	if got := doc.Background(); got != model.HomeBackground {
		t.Errorf("background = %q, want %q", got, model.HomeBackground)
	}
}

func TestHome_Structure(t *testing.T) {
	t.Parallel()

	_, doc, _ := newTestApp(t, "/", Options{})
	s := model.DefaultStrings()

	if got := heading(t, doc); got != s.HomeHeading {
		t.Errorf("heading = %q, want %q", got, s.HomeHeading)
	}
	input := FindByID(doc.Root(), InputID)
	if v, _ := Attr(input, "maxlength"); v != "4" {
		t.Errorf("maxlength = %q, want 4", v)
	}
	if v, _ := Attr(input, "placeholder"); v != s.Placeholder {
		t.Errorf("placeholder = %q, want %q", v, s.Placeholder)
	}
	if got := TextContent(FindByID(doc.Root(), ErrorID)); got != "" {
		t.Errorf("error slot = %q, want empty", got)
	}
	if FindByID(doc.Root(), SubmitID) == nil {
		t.Error("submit control missing")
	}
}

func TestSubmit_NavigatesToResult(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"infp", "  enfj  ", "zz", "ab c"} {
		app, doc, nav := newTestApp(t, "/", Options{})
		submit(app, value)

		want := "/result?mbti=" + strings.TrimSpace(value)
		if got := nav.Fragment(); got != want {
			t.Errorf("submit(%q): fragment = %q, want %q", value, got, want)
			continue
		}

		res := catalog.Default().Resolve(route.Parse(want).Code)
		if got := description(t, doc); got != res.Record.Description {
			t.Errorf("submit(%q): description = %q, want %q", value, got, res.Record.Description)
		}
	}
}

func TestSubmit_EnterKey(t *testing.T) {
	t.Parallel()

	app, _, nav := newTestApp(t, "/", Options{})
	app.Dispatch(InputChanged{Value: "intj"})
	app.Dispatch(KeyPressed{Key: "a"})
	if got := nav.Fragment(); got != "/" {
		t.Fatalf("non-enter key navigated to %q", got)
	}
	app.Dispatch(KeyPressed{Key: KeyEnter})
	if got := nav.Fragment(); got != "/result?mbti=intj" {
		t.Errorf("fragment = %q, want /result?mbti=intj", got)
	}
}

func TestSubmit_EmptyShowsError(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "   ", "\t"} {
		app, doc, nav := newTestApp(t, "/", Options{})
		submit(app, value)

		if got := nav.Fragment(); got != "/" {
			t.Errorf("submit(%q): fragment = %q, want unchanged /", value, got)
		}
		want := model.DefaultStrings().EmptyInputError
		if got := TextContent(FindByID(doc.Root(), ErrorID)); got != want {
			t.Errorf("submit(%q): error = %q, want %q", value, got, want)
		}
	}
}

func TestSubmit_IgnoredOnResultPage(t *testing.T) {
	t.Parallel()

	app, _, nav := newTestApp(t, "/result?mbti=infp", Options{})
	app.Dispatch(InputChanged{Value: "entp"})
	app.Dispatch(SubmitPressed{})

	if got := nav.Fragment(); got != "/result?mbti=infp" {
		t.Errorf("fragment = %q, want unchanged", got)
	}
}

func TestResult_Scenarios(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	infp, _ := cat.Lookup("INFP")
	fallback, _ := cat.Lookup(model.DefaultCode)

	tests := []struct {
		fragment    string
		wantHeading string
		wantRecord  model.Record
	}{
		{"#/result?mbti=infp", "INFP", infp},
		{"#/result?mbti=zzzz", "ZZZZ", fallback},
		{"#/result", model.DefaultCode, fallback},
		{"#/result?mbti=", model.DefaultCode, fallback},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			app, doc, _ := newTestApp(t, "/", Options{ApplyColor: true})
			app.Dispatch(HashChanged{Fragment: tt.fragment})

			if got := heading(t, doc); got != tt.wantHeading {
				t.Errorf("heading = %q, want %q", got, tt.wantHeading)
			}
			if got := description(t, doc); got != tt.wantRecord.Description {
				t.Errorf("description = %q, want %q", got, tt.wantRecord.Description)
			}
			if got := doc.Background(); got != tt.wantRecord.Color {
				t.Errorf("background = %q, want %q", got, tt.wantRecord.Color)
			}
			back := FindByID(doc.Root(), BackID)
			if href, _ := Attr(back, "href"); href != "#/" {
				t.Errorf("back href = %q, want #/", href)
			}
		})
	}
}

func TestResult_CelebrateModeWithoutColor(t *testing.T) {
	t.Parallel()

	_, doc, _ := newTestApp(t, "/result?mbti=istj", Options{Mode: model.DisplayCelebrate})

	if got, want := heading(t, doc), model.DefaultStrings().CelebrateTitle; got != want {
		t.Errorf("heading = %q, want %q", got, want)
	}
	if got := doc.Background(); got != model.HomeBackground {
		t.Errorf("background = %q, want home background", got)
	}
}

func TestRouter_BogusPathRendersHome(t *testing.T) {
	t.Parallel()

	app, doc, _ := newTestApp(t, "/bogus-path", Options{})
	if r, _ := app.Current(); r.Kind != route.Home {
		t.Fatalf("kind = %v, want home", r.Kind)
	}
	if FindByID(doc.Root(), InputID) == nil {
		t.Error("home input not mounted for unknown path")
	}
}

func TestRouter_IdempotentReplacement(t *testing.T) {
	t.Parallel()

	for _, fragment := range []string{"/", "/result?mbti=enfp"} {
		app, doc, _ := newTestApp(t, fragment, Options{})
		before, err := doc.ContentHTML()
		if err != nil {
			t.Fatal(err)
		}

		app.Dispatch(HashChanged{Fragment: fragment})
		app.Dispatch(HashChanged{Fragment: fragment})

		if got := ChildElements(doc.Root()); got != 1 {
			t.Errorf("%s: root children = %d, want 1", fragment, got)
		}
		after, err := doc.ContentHTML()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("%s: re-render changed content (-before +after):\n%s", fragment, diff)
		}
	}
}

func TestTransitions_NoLeakedNodes(t *testing.T) {
	t.Parallel()

	app, doc, nav := newTestApp(t, "/", Options{})
	submit(app, "estp")
	nav.Navigate("/")
	submit(app, "")
	nav.Navigate("/result?mbti=isfp")

	if got := ChildElements(doc.Root()); got != 1 {
		t.Fatalf("root children = %d, want 1", got)
	}
	if FindByID(doc.Root(), InputID) != nil || FindByID(doc.Root(), ErrorID) != nil {
		t.Error("home nodes leaked into result page")
	}
	want := []string{"/", "/result?mbti=estp", "/"}
	if diff := cmp.Diff(want, nav.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigator_SameFragmentDoesNotFire(t *testing.T) {
	t.Parallel()

	nav := NewMemoryNavigator("/")
	fired := 0
	nav.OnHashChange(func(string) { fired++ })
	nav.Navigate("/")
	nav.Navigate("/result")
	nav.Navigate("/result")
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}
