// Command riskform-cli runs a prediction session in the terminal: it walks
// the schema fields as interactive prompts, submits the collected payload,
// and prints the prediction.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-riskform/pkg/client"
	"github.com/goliatone/go-riskform/pkg/openapi"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/renderers/tui"
	"github.com/goliatone/go-riskform/pkg/result"
	"github.com/goliatone/go-riskform/pkg/schema"
)

func main() {
	_ = godotenv.Load()

	var (
		apiFlag       = flag.String("api", "", "prediction service base URL (defaults to RISKFORM_API_BASE or "+client.DefaultBaseURL+")")
		schemaFlag    = flag.String("schema", "", "local schema document (JSON/YAML field schema or OpenAPI); skips the remote schema fetch")
		operationFlag = flag.String("operation", "", "OpenAPI operation ID when -schema points at an OpenAPI document")
		formatFlag    = flag.String("format", "pretty", "result output format: pretty or json")
		noPredictFlag = flag.Bool("no-predict", false, "collect and print the payload without calling the service")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(client.WithBaseURL(*apiFlag))

	fields, err := loadSchema(ctx, api, *schemaFlag, *operationFlag)
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	session := tui.New()
	payloadJSON, err := session.Render(ctx, fields, render.RenderOptions{})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		log.Fatalf("collect: %v", err)
	}

	if *noPredictFlag {
		fmt.Println(string(payloadJSON))
		return
	}

	var values map[string]any
	if err := json.Unmarshal(payloadJSON, &values); err != nil {
		log.Fatalf("decode payload: %v", err)
	}

	prediction, err := api.Predict(ctx, schema.NewPayload(fields.FeatureOrder, values))
	if err != nil {
		log.Fatalf("predict: %v", err)
	}

	if err := printPrediction(os.Stdout, prediction, *formatFlag); err != nil {
		log.Fatalf("output: %v", err)
	}
}

func loadSchema(ctx context.Context, api *client.Client, path, operationID string) (schema.FieldSchema, error) {
	if path == "" {
		return api.Schema(ctx)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.FieldSchema{}, err
	}
	if openapi.Detect(raw) {
		return openapi.FieldSchemaFromDocument(ctx, raw, operationID)
	}
	return schema.ParseDocument(raw)
}

func printPrediction(out *os.File, prediction *schema.PredictionResult, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(prediction)
	case "pretty":
		severity := result.Classify(prediction.RiskLabel)
		label := prediction.RiskLabel
		if label == "" {
			label = severity.Describe()
		}
		if _, err := fmt.Fprintf(out, "Probability: %s\nRisk: %s\n",
			result.FormatProbability(prediction.Probability), label); err != nil {
			return err
		}
		if len(prediction.InputsUsed) > 0 {
			names := make([]string, 0, len(prediction.InputsUsed))
			for name := range prediction.InputsUsed {
				names = append(names, name)
			}
			sort.Strings(names)
			if _, err := fmt.Fprintln(out, "Inputs:"); err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintf(out, "  %s: %v\n", name, prediction.InputsUsed[name]); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
