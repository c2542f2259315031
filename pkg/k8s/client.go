package k8s

import (
	"errors"
	"fmt"
	"os"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// 读取 secret 只需要一个 clientset，rest config 按次序构建：
// - KUBECONFIG_DATA 环境变量
// - KUBERNETES_SERVER + KUBERNETES_TOKEN（可选 KUBERNETES_CA_CERT）
// - in-cluster service account
// - kubeconfig 文件：kubeconfigPath，否则 $KUBECONFIG / ~/.kube/config
func BuildRestConfig(kubeconfigPath string) (*rest.Config, error) {
	if data := os.Getenv("KUBECONFIG_DATA"); data != "" {
		config, err := clientcmd.RESTConfigFromKubeConfig([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("failed to build config from KUBECONFIG_DATA: %w", err)
		}
		return config, nil
	}
	if server := os.Getenv("KUBERNETES_SERVER"); server != "" {
		return tokenConfig(server, os.Getenv("KUBERNETES_TOKEN"), os.Getenv("KUBERNETES_CA_CERT"))
	}
	if config, err := rest.InClusterConfig(); err == nil {
		return config, nil
	}
	return fileConfig(kubeconfigPath)
}

func tokenConfig(server, token, caCert string) (*rest.Config, error) {
	if token == "" {
		return nil, errors.New("KUBERNETES_TOKEN environment variable is required when KUBERNETES_SERVER is set")
	}
	config := &rest.Config{Host: server, BearerToken: token}
	if caCert != "" {
		config.TLSClientConfig.CAData = []byte(caCert)
	}
	return config, nil
}

func fileConfig(kubeconfigPath string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		rules.ExplicitPath = kubeconfigPath
	}
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	return config, nil
}

func NewClientset(kubeconfigPath string) (kubernetes.Interface, error) {
	config, err := BuildRestConfig(kubeconfigPath)
	if err != nil {
		return nil, err
	}
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build clientset: %w", err)
	}
	return clientset, nil
}
