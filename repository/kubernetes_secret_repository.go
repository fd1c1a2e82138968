// ABOUTME: Kubernetes Secret-based CredentialOverrideStore implementation
// ABOUTME: Holds per-environment user overrides for in-cluster deployments

package repository

import (
	"context"
	"fmt"
	"log/slog"

	"parking-gateway/models"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// KubernetesSecretCredentialStore keeps user credential overrides in one
// Kubernetes Secret, keyed "<environment>.client_id" /
// "<environment>.client_secret".
type KubernetesSecretCredentialStore struct {
	clientset  kubernetes.Interface
	namespace  string
	secretName string
	logger     *slog.Logger
}

// NewKubernetesSecretCredentialStore creates a store using the in-cluster
// service account configuration.
func NewKubernetesSecretCredentialStore(namespace, secretName string, logger *slog.Logger) (*KubernetesSecretCredentialStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset: %w", err)
	}

	return NewKubernetesSecretCredentialStoreWithClientset(clientset, namespace, secretName, logger), nil
}

// NewKubernetesSecretCredentialStoreWithClientset creates a store with a
// custom clientset (for testing).
func NewKubernetesSecretCredentialStoreWithClientset(
	clientset kubernetes.Interface,
	namespace, secretName string,
	logger *slog.Logger,
) *KubernetesSecretCredentialStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &KubernetesSecretCredentialStore{
		clientset:  clientset,
		namespace:  namespace,
		secretName: secretName,
		logger:     logger,
	}
}

func clientIDKey(env models.Environment) string     { return string(env) + ".client_id" }
func clientSecretKey(env models.Environment) string { return string(env) + ".client_secret" }

// Get returns the stored override or ErrCredentialsNotFound.
func (s *KubernetesSecretCredentialStore) Get(ctx context.Context, env models.Environment) (*models.ClientCredentials, error) {
	secret, err := s.clientset.CoreV1().Secrets(s.namespace).Get(ctx, s.secretName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve credential secret: %w", err)
	}

	id, idOK := secret.Data[clientIDKey(env)]
	sec, secOK := secret.Data[clientSecretKey(env)]
	if !idOK || !secOK {
		return nil, ErrCredentialsNotFound
	}

	return &models.ClientCredentials{
		ClientID:     string(id),
		ClientSecret: string(sec),
	}, nil
}

// Save stores an override for the environment, creating the Secret when it
// does not exist yet.
func (s *KubernetesSecretCredentialStore) Save(ctx context.Context, env models.Environment, creds models.ClientCredentials) error {
	if !creds.IsComplete() {
		return ErrInvalidCredentials
	}

	secrets := s.clientset.CoreV1().Secrets(s.namespace)

	secret, err := secrets.Get(ctx, s.secretName, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to read credential secret: %w", err)
		}

		secret = &corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{
				Name:      s.secretName,
				Namespace: s.namespace,
			},
			Data: map[string][]byte{},
			Type: corev1.SecretTypeOpaque,
		}
		s.setCredentialData(secret, env, creds)

		if _, err := secrets.Create(ctx, secret, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create credential secret: %w", err)
		}
		s.logger.Info("Credential secret created", "environment", string(env), "secret_name", s.secretName)
		return nil
	}

	if secret.Data == nil {
		secret.Data = map[string][]byte{}
	}
	s.setCredentialData(secret, env, creds)

	if _, err := secrets.Update(ctx, secret, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update credential secret: %w", err)
	}

	s.logger.Info("Credential override saved to secret", "environment", string(env), "secret_name", s.secretName)
	return nil
}

// Delete removes an override, or returns ErrCredentialsNotFound when none
// exists.
func (s *KubernetesSecretCredentialStore) Delete(ctx context.Context, env models.Environment) error {
	secrets := s.clientset.CoreV1().Secrets(s.namespace)

	secret, err := secrets.Get(ctx, s.secretName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to read credential secret: %w", err)
	}

	if _, ok := secret.Data[clientIDKey(env)]; !ok {
		return ErrCredentialsNotFound
	}

	delete(secret.Data, clientIDKey(env))
	delete(secret.Data, clientSecretKey(env))

	if _, err := secrets.Update(ctx, secret, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update credential secret: %w", err)
	}

	s.logger.Info("Credential override removed from secret", "environment", string(env), "secret_name", s.secretName)
	return nil
}

func (s *KubernetesSecretCredentialStore) setCredentialData(secret *corev1.Secret, env models.Environment, creds models.ClientCredentials) {
	secret.Data[clientIDKey(env)] = []byte(creds.ClientID)
	secret.Data[clientSecretKey(env)] = []byte(creds.ClientSecret)
}
