package k8s

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/boqier/qiwei-mcp-server/pkg/config"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// SecretRef names a Secret as namespace/name.
type SecretRef struct {
	Namespace string
	Name      string
}

func (r SecretRef) String() string {
	return r.Namespace + "/" + r.Name
}

// ParseSecretRef accepts "namespace/name" or a bare "name". A bare name uses
// $POD_NAMESPACE, falling back to "default".
func ParseSecretRef(s string) (SecretRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SecretRef{}, errors.New("secret reference is empty")
	}
	ns, name, found := strings.Cut(s, "/")
	if !found {
		name = ns
		ns = os.Getenv("POD_NAMESPACE")
		if ns == "" {
			ns = "default"
		}
	}
	if ns == "" || name == "" || strings.Contains(name, "/") {
		return SecretRef{}, fmt.Errorf("invalid secret reference %q, want namespace/name", s)
	}
	return SecretRef{Namespace: ns, Name: name}, nil
}

// LoadSecretSource reads a Secret once and exposes its data keys as a
// config source, keyed the same way as environment variables (BOT_URL).
func LoadSecretSource(ctx context.Context, client kubernetes.Interface, ref SecretRef) (*config.MapSource, error) {
	secret, err := client.CoreV1().Secrets(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", ref, err)
	}
	values := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.Data {
		values[k] = string(v)
	}
	// StringData is write-only on a real API server but fake clients keep it.
	for k, v := range secret.StringData {
		if _, ok := values[k]; !ok {
			values[k] = v
		}
	}
	return config.NewMapSource("secret:"+ref.String(), values), nil
}
