package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	mu        sync.Mutex
	testCount = make(map[string]int)
)

// Filename returns the file the next snapshot of the test is stored in
// Every call advances the counter for the test
func Filename(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	mu.Lock()
	call := testCount[name]
	testCount[name] = call + 1
	mu.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))
}

// Validate compares obj, encoded as indented JSON, to the test's next snapshot file
// A missing snapshot file is written and the comparison passes
func Validate(t testing.TB, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	filename := Filename(t)
	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		if err := create(filename, objJSON); err != nil {
			t.Fatalf("could not write snapshot %s: %v", filename, err)
		}

		return true
	} else if err != nil {
		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
		return false
	}

	return true
}

func create(filename string, data []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(data, '\n'), 0644)
}
