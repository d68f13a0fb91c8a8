package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

const rawFeatures = `,designation,description,productid,imageid
0,Olivia: Personalisiertes Notizbuch,,3804725264,1263597046
1,Journal des arts (le) n° 133,"<p>Livre d'art</p>",436067568,1008141237
2,Grand Stylet Ergonomique,nan,201115110,938777978
`

const rawLabels = `,prdtypecode
0,10
1,2280
2,50
`

func TestReadFeaturesAndFuse(t *testing.T) {
	table, err := ReadFeatures(strings.NewReader(rawFeatures))
	if err != nil {
		t.Fatalf("ReadFeatures failed: %v", err)
	}
	if table.Len() != 3 || table.Fused {
		t.Fatalf("unexpected table: %+v", table)
	}
	if table.Records[1].ProductID != "436067568" || table.Records[1].ImageID != "1008141237" {
		t.Fatalf("unexpected ids: %+v", table.Records[1])
	}

	Fuse(table)
	want := []string{
		" Olivia: Personalisiertes Notizbuch",
		"<p>Livre d'art</p> Journal des arts (le) n° 133",
		" Grand Stylet Ergonomique",
	}
	if got := table.Texts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("fused texts = %q, want %q", got, want)
	}
	if !table.Fused || table.Records[0].Designation != "" {
		t.Fatal("fusion must drop raw text columns")
	}
}

func TestFuseOnlyBlanksExactMissingDescription(t *testing.T) {
	table := &Table{Records: []Record{
		{Index: "0", Designation: "nan", Description: "nan"},
		{Index: "1", Designation: "Lampe", Description: " NaN "},
		{Index: "2", Designation: "Lampe", Description: "Nan"},
	}}
	Fuse(table)
	want := []string{" nan", " NaN  Lampe", "Nan Lampe"}
	if got := table.Texts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("fused texts = %q, want %q", got, want)
	}
}

func TestFusedRoundTrip(t *testing.T) {
	table, err := ReadFeatures(strings.NewReader(rawFeatures))
	if err != nil {
		t.Fatal(err)
	}
	Fuse(table)

	var buf bytes.Buffer
	if err := WriteFeatures(&buf, table); err != nil {
		t.Fatalf("WriteFeatures failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), ",productid,imageid,descriptif\n") {
		t.Fatalf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	back, err := ReadFeatures(&buf)
	if err != nil {
		t.Fatalf("ReadFeatures failed: %v", err)
	}
	if !reflect.DeepEqual(back, table) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, table)
	}
}

func TestReadFeaturesRejectsMissingColumns(t *testing.T) {
	tests := []string{
		"",
		",designation,imageid\n0,a,1\n",
		",productid,imageid\n0,1,2\n",
	}
	for _, input := range tests {
		if _, err := ReadFeatures(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestLoadFeaturesMissingFile(t *testing.T) {
	if _, err := LoadFeatures(filepath.Join(t.TempDir(), "X_train.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestAlign(t *testing.T) {
	table, _ := ReadFeatures(strings.NewReader(rawFeatures))
	labels, err := ReadLabels(strings.NewReader(rawLabels))
	if err != nil {
		t.Fatalf("ReadLabels failed: %v", err)
	}
	// Labels in a different order still align by index.
	labels[0], labels[2] = labels[2], labels[0]
	codes, err := Align(table, labels)
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if !reflect.DeepEqual(codes, []string{"10", "2280", "50"}) {
		t.Fatalf("unexpected codes: %v", codes)
	}

	if _, err := Align(table, labels[:2]); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned for missing label, got %v", err)
	}
	dup := append(Labels{{Index: "0", Code: "10"}}, labels...)
	if _, err := Align(table, dup); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned for duplicate label, got %v", err)
	}
}

func TestDistribution(t *testing.T) {
	labels := Labels{{"0", "10"}, {"1", "50"}, {"2", "10"}, {"3", "2280"}, {"4", "50"}, {"5", "10"}}
	want := []LabelCount{{"10", 3}, {"50", 2}, {"2280", 1}}
	if got := labels.Distribution(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Distribution = %v, want %v", got, want)
	}
}

func TestColumnRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteColumn(&buf, ColumnLanguage, []string{"0", "1"}, []string{"Français", "Langue non supportée"}); err != nil {
		t.Fatal(err)
	}
	index, values, err := ReadColumn(&buf, ColumnLanguage)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(index, []string{"0", "1"}) || !reflect.DeepEqual(values, []string{"Français", "Langue non supportée"}) {
		t.Fatalf("unexpected column: %v %v", index, values)
	}
	if err := WriteColumn(&buf, "x", []string{"0"}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func syntheticDataset(n int) (*Table, Labels) {
	table := &Table{Fused: true}
	labels := make(Labels, 0, n)
	for i := 0; i < n; i++ {
		idx := strconv.Itoa(i)
		table.Records = append(table.Records, Record{Index: idx, Descriptif: "text " + idx})
		labels = append(labels, Label{Index: idx, Code: []string{"10", "40", "50"}[i%3]})
	}
	return table, labels
}

func TestSplitIndices(t *testing.T) {
	tests := []struct {
		n         int
		ratio     float64
		wantTest  int
		wantTrain int
	}{
		{10, 0.2, 2, 8},
		{100, 0.2, 20, 80},
		{7, 0.2, 2, 5},
		{4, 0.25, 1, 3},
	}
	for _, tt := range tests {
		train, test, err := SplitIndices(tt.n, tt.ratio, 66)
		if err != nil {
			t.Fatalf("SplitIndices(%d, %v) failed: %v", tt.n, tt.ratio, err)
		}
		if len(test) != tt.wantTest || len(train) != tt.wantTrain {
			t.Errorf("SplitIndices(%d, %v) sizes = %d/%d, want %d/%d", tt.n, tt.ratio, len(train), len(test), tt.wantTrain, tt.wantTest)
		}
		seen := make(map[int]bool, tt.n)
		for _, i := range append(append([]int(nil), train...), test...) {
			if seen[i] {
				t.Fatalf("position %d appears twice", i)
			}
			seen[i] = true
		}
		if len(seen) != tt.n {
			t.Fatalf("partitions cover %d of %d positions", len(seen), tt.n)
		}
	}

	for _, bad := range []struct {
		n     int
		ratio float64
	}{{1, 0.2}, {0, 0.2}, {10, 0}, {10, 1}} {
		if _, _, err := SplitIndices(bad.n, bad.ratio, 66); err == nil {
			t.Errorf("expected error for n=%d ratio=%v", bad.n, bad.ratio)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	table, labels := syntheticDataset(50)
	first, err := Split(table, labels, 0.2, 66)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	second, err := Split(table, labels, 0.2, 66)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed must produce the same partition")
	}
	other, err := Split(table, labels, 0.2, 7)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(first.YTest, other.YTest) {
		t.Fatal("different seeds should produce different partitions")
	}

	if first.XTest.Len() != 10 || first.XTrain.Len() != 40 {
		t.Fatalf("unexpected sizes: train=%d test=%d", first.XTrain.Len(), first.XTest.Len())
	}
	testIdx := make(map[string]bool)
	for i, rec := range first.XTest.Records {
		testIdx[rec.Index] = true
		if first.YTest[i].Index != rec.Index {
			t.Fatalf("features and labels out of step at %d", i)
		}
	}
	for _, rec := range first.XTrain.Records {
		if testIdx[rec.Index] {
			t.Fatalf("record %s in both partitions", rec.Index)
		}
	}
}

func TestWritePartition(t *testing.T) {
	table, labels := syntheticDataset(10)
	part, err := Split(table, labels, 0.2, 66)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "split")
	if err := WritePartition(dir, part); err != nil {
		t.Fatalf("WritePartition failed: %v", err)
	}
	for _, name := range []string{FileXTrain, FileXTest, FileYTrain, FileYTest} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	yTest, err := LoadLabels(filepath.Join(dir, FileYTest))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(yTest, part.YTest) {
		t.Fatalf("y_test mismatch: %v vs %v", yTest, part.YTest)
	}
	xTrain, err := LoadFeatures(filepath.Join(dir, FileXTrain))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(xTrain, part.XTrain) {
		t.Fatal("X_train mismatch after reload")
	}
}
