package artifacts

import (
	"fmt"
	"sort"
	"sync"

	"termdeposit/ports"
)

// ModelDecoder turns a model document into a classifier.
type ModelDecoder func(data []byte, unmarshal Unmarshaler) (ports.Classifier, error)

var (
	decodersMu    sync.RWMutex
	modelDecoders = map[string]ModelDecoder{}
)

func init() {
	RegisterModel(kindGaussianNB, decodeGaussianNB)
	RegisterModel(kindLogisticRegression, decodeLogisticRegression)
}

// RegisterModel makes a model kind loadable. Registering an existing kind replaces it.
func RegisterModel(kind string, decoder ModelDecoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	modelDecoders[kind] = decoder
}

// ModelKinds lists the registered model kinds, sorted.
func ModelKinds() []string {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	kinds := make([]string, 0, len(modelDecoders))
	for k := range modelDecoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func decodeModel(data []byte, unmarshal Unmarshaler) (ports.Classifier, header, error) {
	var h header
	if err := unmarshal(data, &h); err != nil {
		return nil, h, fmt.Errorf("decode model header: %w", err)
	}
	decodersMu.RLock()
	decoder, ok := modelDecoders[h.Kind]
	decodersMu.RUnlock()
	if !ok {
		return nil, h, fmt.Errorf("unsupported model kind %q (known: %v)", h.Kind, ModelKinds())
	}
	clf, err := decoder(data, unmarshal)
	return clf, h, err
}
