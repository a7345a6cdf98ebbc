package main

import "time"

type benchConfig struct {
	Endpoint string        `env:"BENCH_ENDPOINT" envDefault:"http://localhost:8080/extract"`
	DataDir  string        `env:"BENCH_DATA_DIR" envDefault:"./data"`
	Timeout  time.Duration `env:"BENCH_TIMEOUT" envDefault:"2m"`
	Formats  []string      `env:"BENCH_FORMATS" envSeparator:"," envDefault:"png,jpg,jpeg"`
}

type invocationEvent struct {
	Base64 string `json:"base64"`
}

type responseEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type BenchResult struct {
	File       string
	Format     string
	Duration   time.Duration
	Size       int64
	TextLength int
	StatusCode int
	Err        error
}

type Agg struct {
	Count      int
	Failed     int
	Total      time.Duration
	TotalBytes int64
}
