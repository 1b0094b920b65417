package testing

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"sort"
)

// PullSecret is a syntactically valid pull secret.
const PullSecret = `{"auths":{"cloud.openshift.com":{"auth":"dGVzdDp0ZXN0","email":"ops@example.test"}}}`

// NameServers is a typical Route 53 delegation set.
var NameServers = []string{
	"ns-1.awsdns-01.org",
	"ns-2.awsdns-02.co.uk",
	"ns-3.awsdns-03.com",
	"ns-4.awsdns-04.net",
}

// Kubeconfig returns an installer-style admin kubeconfig pointing at server.
func Kubeconfig(server string) []byte {
	return []byte(fmt.Sprintf(`apiVersion: v1
kind: Config
clusters:
- cluster:
    certificate-authority-data: ""
    server: %s
  name: demo
contexts:
- context:
    cluster: demo
    user: admin
  name: admin
current-context: admin
users:
- name: admin
  user:
    token: test-token
`, server))
}

// TarGz builds a release archive containing files with mode 0755.
func TarGz(files map[string]string) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, name := range names {
		body := files[name]
		if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0o755, Size: int64(len(body)), Typeflag: tar.TypeReg}); err != nil {
			return nil, err
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
