package cli

import (
	"testing"

	"clubcine-quiz/internal/config"
	"clubcine-quiz/internal/infra/resource"
)

func TestQuestionLoaderSelection(t *testing.T) {
	cfg := config.Config{}

	loader, source := questionLoader(cfg, nil)
	if source != defaultQuestionSource {
		t.Fatalf("expected default source, got %q", source)
	}
	if _, ok := loader.(*resource.FileLoader); !ok {
		t.Fatalf("expected file loader, got %T", loader)
	}

	cfg.Quiz.Source = "https://example.com/data.json"
	loader, source = questionLoader(cfg, nil)
	if source != cfg.Quiz.Source {
		t.Fatalf("unexpected source %q", source)
	}
	if _, ok := loader.(*resource.HTTPLoader); !ok {
		t.Fatalf("expected http loader, got %T", loader)
	}

	cfg.Quiz.Source = "quiz/data.yaml"
	if loader, _ := questionLoader(cfg, nil); loader == nil {
		t.Fatalf("expected loader")
	}
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"start", "migrate", "import"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("expected %s subcommand, got %v %v", name, sub, err)
		}
	}
	if cmd.PersistentFlags().Lookup("config") == nil || cmd.PersistentFlags().Lookup("port") == nil {
		t.Fatalf("expected persistent flags")
	}
}

func TestOpenBunDBRequiresURL(t *testing.T) {
	if _, err := openBunDB(config.Config{}); err == nil {
		t.Fatalf("expected error without postgres url")
	}
}
