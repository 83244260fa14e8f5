// Command imdbsentiment trains and compares three sentiment classifiers on
// the IMDB review dataset: penalized logistic regression, gradient-boosted
// trees and a small neural network. All three share one text featurization
// spec; the comparison is rendered as ROC curves, a coefficient plot and
// word clouds of the linear model's strongest terms.
//
// The run is strictly sequential. Each step blocks until done and any
// failure aborts the whole run; there is no retry.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dominguezus/imdbsentiment/pkg/config"
	"github.com/dominguezus/imdbsentiment/pkg/data"
	"github.com/dominguezus/imdbsentiment/pkg/eval"
	"github.com/dominguezus/imdbsentiment/pkg/exec"
	"github.com/dominguezus/imdbsentiment/pkg/model"
	"github.com/dominguezus/imdbsentiment/pkg/textfeat"
	"github.com/dominguezus/imdbsentiment/pkg/viz"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("run_id", uuid.NewString()[:8]).Logger()

	backend, err := exec.FromName(cfg.Backend, cfg.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("select execution backend")
	}
	log.Info().Str("backend", backend.Name()).Int("workers", cfg.Workers).
		Msg("execution backend selected")

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output directory")
	}

	// Step 1: resolve the train and test dataset handles.
	train, err := data.Load(cfg.Train.Path, cfg.Train.TextColumn, cfg.Train.LabelColumn, cfg.Progress)
	if err != nil {
		log.Fatal().Err(err).Msg("load training data")
	}
	test, err := data.Load(cfg.Test.Path, cfg.Test.TextColumn, cfg.Test.LabelColumn, cfg.Progress)
	if err != nil {
		log.Fatal().Err(err).Msg("load test data")
	}
	log.Info().Int("train_rows", train.Len()).Int("test_rows", test.Len()).
		Msg("datasets loaded")

	// Step 2: one featurizer spec, shared by every trainer.
	vec := textfeat.NewVectorizer(cfg.Features.Spec())
	vec.Backend = backend
	XTrain, err := vec.FitTransform(train.Texts)
	if err != nil {
		log.Fatal().Err(err).Msg("featurize training data")
	}
	XTest, err := vec.Transform(test.Texts)
	if err != nil {
		log.Fatal().Err(err).Msg("featurize test data")
	}
	log.Info().Int("features", vec.NumFeatures()).
		Int("ngram_length", cfg.Features.NGramLength).Msg("vocabulary fitted")

	// Step 3: train the three models on identical features.
	logistic := model.NewLogisticRegression(vec.NumFeatures(),
		model.WithLearningRate(cfg.Logistic.LearningRate),
		model.WithEpochs(cfg.Logistic.Epochs),
		model.WithBatchSize(cfg.Logistic.BatchSize),
		model.WithL1(cfg.Logistic.L1),
		model.WithL2(cfg.Logistic.L2),
		model.WithSeed(cfg.Seed),
		model.WithBackend(backend),
	)
	fitModel(log, "logistic", logistic, XTrain, train.Labels)

	boosted := model.NewGradientBoosting(
		model.WithStages(cfg.Boosting.Trees),
		model.WithShrinkage(cfg.Boosting.Shrinkage),
		model.WithGBMaxDepth(cfg.Boosting.MaxDepth),
		model.WithGBMinSamplesLeaf(cfg.Boosting.MinSamplesLeaf),
		model.WithSubsample(cfg.Boosting.Subsample),
		model.WithGBSeed(cfg.Seed),
		model.WithGBBackend(backend),
	)
	fitModel(log, "boosted", boosted, XTrain, train.Labels)

	network := model.NewNeuralNet(vec.NumFeatures(),
		model.WithHiddenUnits(cfg.Network.HiddenUnits),
		model.WithNetLearningRate(cfg.Network.LearningRate),
		model.WithNetEpochs(cfg.Network.Epochs),
		model.WithNetBatchSize(cfg.Network.BatchSize),
		model.WithNetSeed(cfg.Seed),
	)
	fitModel(log, "network", network, XTrain, train.Labels)

	// Step 4: score the held-out split, one column per model. Each score
	// step emits a generic "Probability" column which is renamed to the
	// model's identifier before the tables are merged.
	table := scoreModel(log, "logistic", logistic, XTest, cfg.Test.LabelColumn, test.Labels)
	for _, sc := range []struct {
		name string
		m    model.Classifier
	}{
		{"boosted", boosted},
		{"network", network},
	} {
		other := scoreModel(log, sc.name, sc.m, XTest, cfg.Test.LabelColumn, test.Labels)
		if err := table.Merge(other); err != nil {
			log.Fatal().Err(err).Str("model", sc.name).Msg("merge prediction columns")
		}
	}

	// Step 5: ROC comparison and threshold metrics.
	curves, err := table.ROCs()
	if err != nil {
		log.Fatal().Err(err).Msg("compute roc curves")
	}
	yTrue := model.LabelsFromFloats(table.Labels())
	for _, c := range curves {
		scores, _ := table.Scores(c.Model)
		pred := model.BinaryPredFromProba(scores, 0.5)
		acc := model.Accuracy(yTrue, pred)
		prec, rec, f1 := model.PrecisionRecallF1(yTrue, pred)
		log.Info().Str("model", c.Model).
			Float64("auc", c.AUC).Float64("accuracy", acc).
			Float64("precision", prec).Float64("recall", rec).Float64("f1", f1).
			Msg("model evaluated")
	}

	rocPath := filepath.Join(cfg.Output, "roc.png")
	if err := viz.PlotROC(curves, rocPath); err != nil {
		log.Fatal().Err(err).Msg("render roc plot")
	}

	// Word clouds come from the linear model's coefficient vector.
	coeffs, err := eval.TopCoefficients(vec.FeatureNames(), logistic.Coefficients(), cfg.TopTerms)
	if err != nil {
		log.Fatal().Err(err).Msg("select top coefficients")
	}
	if err := viz.PlotCoefficients(coeffs, filepath.Join(cfg.Output, "coefficients.png")); err != nil {
		log.Fatal().Err(err).Msg("render coefficient plot")
	}
	positive, negative := eval.SplitBySentiment(coeffs)
	if len(positive) > 0 {
		if err := viz.WordCloud(positive, "Positive sentiment terms",
			filepath.Join(cfg.Output, "wordcloud_positive.png")); err != nil {
			log.Fatal().Err(err).Msg("render positive word cloud")
		}
	}
	if len(negative) > 0 {
		if err := viz.WordCloud(negative, "Negative sentiment terms",
			filepath.Join(cfg.Output, "wordcloud_negative.png")); err != nil {
			log.Fatal().Err(err).Msg("render negative word cloud")
		}
	}

	log.Info().Str("output", cfg.Output).Msg("run complete")
}

// fitModel trains one model and logs its wall time. Any trainer error is
// fatal to the run.
func fitModel(log zerolog.Logger, name string, m model.Model, X [][]float64, y []float64) {
	start := time.Now()
	if err := m.Fit(X, y); err != nil {
		log.Fatal().Err(err).Str("model", name).Msg("training failed")
	}
	log.Info().Str("model", name).Dur("elapsed", time.Since(start)).Msg("model trained")
}

// scoreModel applies a trained model to the held-out features and renames
// the generic score column to the model's identifier.
func scoreModel(log zerolog.Logger, name string, m model.Classifier, X [][]float64, labelName string, labels []float64) *eval.PredictionTable {
	t, err := eval.Score(m, X, labelName, labels, "Probability")
	if err != nil {
		log.Fatal().Err(err).Str("model", name).Msg("scoring failed")
	}
	if err := t.Rename("Probability", name); err != nil {
		log.Fatal().Err(err).Str("model", name).Msg("rename score column")
	}
	return t
}
