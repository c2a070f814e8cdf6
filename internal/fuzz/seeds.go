package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// languageSeeds cover each construct of the language at least once.
var languageSeeds = []string{
	"",
	"fn main():\n    print(1)\n",
	"fn add(a: int, b: int) -> int:\n    return a + b\n",
	"/// doc\nclass P:\n    let x: int\n    fn get(self) -> int:\n        return self.x\n",
	"fn f():\n    for i in range(3):\n        if i == 1:\n            continue\n        else:\n            break\n",
	"fn g():\n    var n = 0\n    while n < 3:\n        n = n + 1\n",
	"@jit\nfn k(t: Tensor[float32, [2, 3]]) -> Tensor[float32, [2, 3]]:\n    return t\n",
	"@parallel(4)\nfn h(xs: List[int]) -> int:\n    return len(xs)\n",
	"let top = 1\nprint(top)\n",
	"fn main():\n    let s = \"unterminated\n",
	"fn main(:\n  let = \n\tx\n",
	"fn f():\n    return p.\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".pain" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

const maxFuzzInput = 1 << 16

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
