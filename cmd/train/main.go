// cmd/train/main.go
// Fits the hourly bike-demand model and writes the artifact the service loads
// at startup. Runs offline; it never touches the record store.
//
// Usage:
//
//	go run ./cmd/train -data hour.csv -out model.json
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/padraicbc/bikeapi/boost"
)

// hourRow maps the columns of the hourly dataset. Extra columns (instant,
// dteday, atemp, casual, registered) are ignored. temp/hum/windspeed arrive
// already rescaled to [0,1]-ish ranges in this dataset.
type hourRow struct {
	Season     float64 `csv:"season"`
	Yr         float64 `csv:"yr"`
	Mnth       float64 `csv:"mnth"`
	Hr         float64 `csv:"hr"`
	Holiday    float64 `csv:"holiday"`
	Weekday    float64 `csv:"weekday"`
	Workingday float64 `csv:"workingday"`
	Weathersit float64 `csv:"weathersit"`
	Temp       float64 `csv:"temp"`
	Hum        float64 `csv:"hum"`
	Windspeed  float64 `csv:"windspeed"`
	Cnt        float64 `csv:"cnt"`
}

// vector builds the 13-feature model input. The interaction terms multiply
// the dataset's temp/hum columns as-is (raw basis); the serving path derives
// its values from client input instead.
func (r *hourRow) vector() []float64 {
	return []float64{
		r.Season,
		r.Yr,
		r.Mnth,
		r.Hr,
		r.Weekday,
		r.Weathersit,
		r.Temp,
		r.Hum,
		r.Windspeed,
		r.Holiday,
		r.Workingday,
		r.Temp * r.Weathersit,
		r.Temp * r.Hum,
	}
}

func main() {
	dataPath := flag.String("data", "hour.csv", "historical hourly dataset")
	outPath := flag.String("out", "model.json", "model artifact destination")
	folds := flag.Int("folds", 5, "cross-validation folds")
	seed := flag.Int64("seed", 42, "shuffle seed for split and folds")
	quick := flag.Bool("quick", false, "shrink the hyperparameter grid for smoke runs")
	flag.Parse()

	f, err := os.Open(*dataPath)
	if err != nil {
		log.Fatal("open dataset:", err)
	}
	defer f.Close()

	log.Printf("loading dataset from %s", *dataPath)
	var rows []*hourRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		log.Fatal("decode dataset:", err)
	}
	if len(rows) == 0 {
		log.Fatal("dataset is empty")
	}

	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		X[i] = r.vector()
		y[i] = r.Cnt
	}

	// The model is trained against log1p(cnt); the service inverts with expm1.
	yLog := boost.Log1p(y)

	Xtrain, Xtest, ytrain, ytest := boost.TrainTestSplit(X, yLog, 0.2, *seed)
	log.Printf("split %d rows into %d train / %d test", len(X), len(Xtrain), len(Xtest))

	grid := boost.ExpandGrid(
		[]int{200, 300},
		[]int{5, 7},
		[]float64{0.01, 0.05},
		[]float64{0.1, 1.0},
		[]float64{0.0, 0.1},
	)
	if *quick {
		grid = boost.ExpandGrid([]int{20}, []int{3}, []float64{0.3}, []float64{1.0}, []float64{0.0})
	}

	log.Printf("searching %d hyperparameter combinations with %d-fold CV", len(grid), *folds)
	best, _, err := boost.GridSearch(Xtrain, ytrain, grid, *folds, *seed)
	if err != nil {
		log.Fatal("grid search:", err)
	}
	log.Printf("best hyperparameters: %+v", best)

	model, err := boost.Train(Xtrain, ytrain, best)
	if err != nil {
		log.Fatal("refit:", err)
	}

	// Evaluate on the count scale, not the log scale.
	pred := boost.Expm1Batch(model.PredictBatch(Xtest))
	truth := boost.Expm1Batch(append([]float64(nil), ytest...))

	mae, err := boost.MAE(truth, pred)
	if err != nil {
		log.Fatal("mae:", err)
	}
	rmse, err := boost.RMSE(truth, pred)
	if err != nil {
		log.Fatal("rmse:", err)
	}
	log.Printf("MAE: %.2f", mae)
	log.Printf("RMSE: %.2f", rmse)

	if err := model.Save(*outPath); err != nil {
		log.Fatal("save model:", err)
	}
	log.Printf("model saved to %s", *outPath)
}
