package httputils

import (
	"crypto/tls"
	"crypto/x509"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	certutil "k8s.io/client-go/util/cert"
	"k8s.io/klog/v2"
)

// JoinPath joins two URL path segments with exactly one slash at the
// junction. An empty a returns b unchanged. Segments are not escaped or
// validated here.
func JoinPath(a, b string) string {

	if a == "" {
		return b
	}

	aSlash := strings.HasSuffix(a, "/")
	bSlash := strings.HasPrefix(b, "/")

	switch {
	case aSlash && bSlash:
		return a + b[1:]
	case aSlash || bSlash:
		return a + b
	}
	return a + "/" + b
}

func CreateTlsConfigFromFiles(caCertFile, certFile, keyFile string, insecureSkipVerify bool) (*tls.Config, error) {

	cert, err := ioutil.ReadFile(certFile)
	if err != nil {
		return nil, err
	}

	key, err := ioutil.ReadFile(keyFile)
	if err != nil {
		return nil, err
	}

	if caCertFile == "" {
		return CreateTlsConfig(nil, cert, key, insecureSkipVerify)
	}

	caCert, err := ioutil.ReadFile(caCertFile)
	if err != nil {
		return nil, err
	}

	return CreateTlsConfig(caCert, cert, key, insecureSkipVerify)

}

func CreateTlsConfig(caCert, cert, key []byte, insecureSkipVerify bool) (*tls.Config, error) {

	tlsCert, err := tls.X509KeyPair(cert, key)
	if err != nil {
		klog.Errorf("error parse bundle cert and key: %s", err)
		return nil, err
	}

	cfg := tls.Config{
		Certificates: []tls.Certificate{
			tlsCert,
		},
		RootCAs:            x509.NewCertPool(),
		InsecureSkipVerify: insecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
		MaxVersion:         tls.VersionTLS12,
	}

	if caCert != nil {
		caCerts, err := certutil.ParseCertsPEM(caCert)
		if err != nil {
			klog.Errorf("error parse CACert: %s", err)
			return nil, err
		}
		cfg.RootCAs.AddCert(caCerts[0])
	}

	return &cfg, nil
}

// Healthz polls endpoint at a constant interval until it answers with a
// 2xx status or attempts are exhausted, and returns the last body.
func Healthz(cli *http.Client, endpoint string, interval time.Duration, attempts uint64) ([]byte, error) {

	var contents []byte

	f := func() error {
		resp, err := cli.Get(endpoint)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return errors.Errorf("unhealthy status %d from %s", resp.StatusCode, endpoint)
		}

		contents, err = ioutil.ReadAll(resp.Body)
		return err
	}
	if err := backoff.Retry(f, backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), attempts)); err != nil {
		return nil, err
	}

	return contents, nil
}
