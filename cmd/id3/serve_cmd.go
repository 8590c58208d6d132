package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pbanos/id3/discretize"
	"github.com/pbanos/id3/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type serveCmdConfig struct {
	*rootCmdConfig
	treeInput string
	addr      string
}

type predictRequest struct {
	Values []float64 `json:"values"`
}

type predictResponse struct {
	Class   string `json:"class,omitempty"`
	Matched bool   `json:"matched"`
	Error   string `json:"error,omitempty"`
}

/*
predictionServer answers prediction requests with a tree, counting the
predictions made by outcome.
*/
type predictionServer struct {
	tree        *tree.Tree
	binner      *discretize.Binner
	logger      zerolog.Logger
	predictions *prometheus.CounterVec
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Long:  `Serve predictions of a tree for records posted as JSON, along with prometheus metrics on /metrics`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			ctx := config.Context()
			binner, err := discretize.New(config.settings.Discretize)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := loadTree(ctx, config.treeInput, config.settings)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			reg := prometheus.NewRegistry()
			ps := newPredictionServer(t, binner, config.logger)
			reg.MustRegister(ps.predictions)
			srv := &http.Server{Addr: config.addr, Handler: ps.routes(reg)}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()
			config.logger.Info().Str("addr", config.addr).Msg("Serving predictions...")
			err = srv.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or redis:ID to load it from redis (required)")
	cmd.PersistentFlags().StringVar(&(config.addr), "addr", ":8080", "address to listen on")
	return cmd
}

func newPredictionServer(t *tree.Tree, b *discretize.Binner, logger zerolog.Logger) *predictionServer {
	return &predictionServer{
		tree:   t,
		binner: b,
		logger: logger,
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "id3",
				Name:      "predictions_total",
				Help:      "Number of predictions requested by outcome.",
			}, []string{"outcome"}),
	}
}

func (ps *predictionServer) routes(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/predict", ps.predict)
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

func (ps *predictionServer) predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req := &predictRequest{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		ps.reply(w, http.StatusBadRequest, &predictResponse{Error: fmt.Sprintf("decoding request: %v", err)})
		return
	}
	features, err := ps.binner.Values(req.Values)
	if err != nil {
		ps.reply(w, http.StatusBadRequest, &predictResponse{Error: err.Error()})
		return
	}
	p, err := ps.tree.Predict(features)
	if err != nil {
		ps.reply(w, http.StatusBadRequest, &predictResponse{Error: err.Error()})
		return
	}
	if p.Matched {
		ps.predictions.WithLabelValues("matched").Inc()
	} else {
		ps.predictions.WithLabelValues("unmatched").Inc()
	}
	ps.logger.Debug().Ints("features", features).Str("prediction", p.String()).Msg("Prediction")
	ps.reply(w, http.StatusOK, &predictResponse{Class: p.Class, Matched: p.Matched})
}

func (ps *predictionServer) reply(w http.ResponseWriter, status int, resp *predictResponse) {
	if resp.Error != "" {
		ps.predictions.WithLabelValues("error").Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		ps.logger.Error().Err(err).Msg("writing prediction response")
	}
}
