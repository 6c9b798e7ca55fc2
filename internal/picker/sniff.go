package picker

import "batchpix/pkg/imgutil"

func sniffPath(path string) (string, error) {
	kind, err := imgutil.SniffFile(path)
	if err != nil {
		return "", err
	}
	return kind.MediaType(), nil
}
