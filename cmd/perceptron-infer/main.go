package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"perceptron/internal/inference"
	"perceptron/internal/model"
)

func main() {
	networkPath := flag.String("n", "", "Parameter file written by perceptron-train")
	imagePath := flag.String("i", "", "Image to classify")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -n network.csv -i img.png\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if *networkPath == "" || *imagePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	pred, err := inference.Open(*networkPath, model.DefaultShape)
	if err != nil {
		log.Fatalf("load network: %v", err)
	}
	log.Printf("network loaded path=%s shape=%s", *networkPath, pred.Shape())

	p, err := pred.PredictImage(*imagePath)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}
	fmt.Printf("Prediction: %f\n", p)
}
