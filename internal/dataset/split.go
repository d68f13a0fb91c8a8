package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
)

// Partition file names written by WritePartition.
const (
	FileXTrain = "X_train.csv"
	FileXTest  = "X_test.csv"
	FileYTrain = "y_train.csv"
	FileYTest  = "y_test.csv"
)

// SplitIndices shuffles 0..n-1 with a PCG source seeded by seed and returns
// the train and test positions. The test side holds ceil(ratio*n) entries.
func SplitIndices(n int, ratio float64, seed uint64) (train, test []int, err error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, fmt.Errorf("test ratio %v outside (0, 1)", ratio)
	}
	nTest := int(math.Ceil(ratio * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain <= 0 {
		return nil, nil, fmt.Errorf("cannot split %d records with test ratio %v", n, ratio)
	}
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// Partition holds the four split outputs.
type Partition struct {
	XTrain *Table
	XTest  *Table
	YTrain Labels
	YTest  Labels
}

// Split aligns table and labels by index then partitions them
// deterministically.
func Split(table *Table, labels Labels, ratio float64, seed uint64) (*Partition, error) {
	codes, err := Align(table, labels)
	if err != nil {
		return nil, err
	}
	train, test, err := SplitIndices(table.Len(), ratio, seed)
	if err != nil {
		return nil, err
	}
	pick := func(positions []int) (*Table, Labels) {
		t := &Table{Records: make([]Record, len(positions)), Fused: table.Fused}
		l := make(Labels, len(positions))
		for i, pos := range positions {
			rec := table.Records[pos]
			t.Records[i] = rec
			l[i] = Label{Index: rec.Index, Code: codes[pos]}
		}
		return t, l
	}
	part := &Partition{}
	part.XTrain, part.YTrain = pick(train)
	part.XTest, part.YTest = pick(test)
	return part, nil
}

// WritePartition writes the four partition files into dir.
func WritePartition(dir string, part *Partition) error {
	if err := WriteFeaturesFile(filepath.Join(dir, FileXTrain), part.XTrain); err != nil {
		return err
	}
	if err := WriteFeaturesFile(filepath.Join(dir, FileXTest), part.XTest); err != nil {
		return err
	}
	if err := WriteLabelsFile(filepath.Join(dir, FileYTrain), part.YTrain); err != nil {
		return err
	}
	return WriteLabelsFile(filepath.Join(dir, FileYTest), part.YTest)
}
