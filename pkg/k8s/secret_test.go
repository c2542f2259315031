package k8s

import (
	"context"
	"testing"

	"github.com/boqier/qiwei-mcp-server/pkg/config"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseSecretRef(t *testing.T) {
	t.Setenv("POD_NAMESPACE", "bots")

	tests := []struct {
		in      string
		want    SecretRef
		wantErr bool
	}{
		{in: "ops/qiwei", want: SecretRef{Namespace: "ops", Name: "qiwei"}},
		{in: "qiwei", want: SecretRef{Namespace: "bots", Name: "qiwei"}},
		{in: " ops/qiwei ", want: SecretRef{Namespace: "ops", Name: "qiwei"}},
		{in: "", wantErr: true},
		{in: "ops/", wantErr: true},
		{in: "/qiwei", wantErr: true},
		{in: "a/b/c", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSecretRef(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSecretRef(%q) expected error, got %+v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSecretRef(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSecretRef(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseSecretRef_DefaultNamespace(t *testing.T) {
	t.Setenv("POD_NAMESPACE", "")

	got, err := ParseSecretRef("qiwei")
	if err != nil {
		t.Fatalf("ParseSecretRef error = %v", err)
	}
	if got.Namespace != "default" {
		t.Fatalf("Namespace = %q, want default", got.Namespace)
	}
}

func TestLoadSecretSource(t *testing.T) {
	t.Parallel()

	client := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ops", Name: "qiwei"},
		Data:       map[string][]byte{"BOT_URL": []byte("https://secret.test/hook")},
	})

	src, err := LoadSecretSource(context.Background(), client, SecretRef{Namespace: "ops", Name: "qiwei"})
	if err != nil {
		t.Fatalf("LoadSecretSource error = %v", err)
	}
	if src.Name() != "secret:ops/qiwei" {
		t.Fatalf("Name() = %q", src.Name())
	}
	v, ok := src.Lookup(config.BotURL)
	if !ok || v != "https://secret.test/hook" {
		t.Fatalf("Lookup(bot_url) = %q, %v", v, ok)
	}
}

func TestLoadSecretSource_IsLowestPrecedence(t *testing.T) {
	t.Parallel()

	client := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: "ops", Name: "qiwei"},
		StringData: map[string]string{"BOT_URL": "https://secret.test/hook"},
	})
	secret, err := LoadSecretSource(context.Background(), client, SecretRef{Namespace: "ops", Name: "qiwei"})
	if err != nil {
		t.Fatalf("LoadSecretSource error = %v", err)
	}

	env := config.EnvSource{LookupEnv: func(key string) (string, bool) {
		if key == "BOT_URL" {
			return "https://env.test/hook", true
		}
		return "", false
	}}
	cfg, err := config.NewResolver(config.DefaultSpec, env, secret).Resolve()
	if err != nil {
		t.Fatalf("Resolve error = %v", err)
	}
	if cfg.BotURL != "https://env.test/hook" {
		t.Fatalf("BotURL = %q, want env value", cfg.BotURL)
	}

	cfg, err = config.NewResolver(config.DefaultSpec, config.EnvSource{LookupEnv: func(string) (string, bool) { return "", false }}, secret).Resolve()
	if err != nil {
		t.Fatalf("Resolve error = %v", err)
	}
	if cfg.BotURL != "https://secret.test/hook" {
		t.Fatalf("BotURL = %q, want secret value", cfg.BotURL)
	}
}

func TestLoadSecretSource_NotFound(t *testing.T) {
	t.Parallel()

	client := fake.NewSimpleClientset()
	if _, err := LoadSecretSource(context.Background(), client, SecretRef{Namespace: "ops", Name: "missing"}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
