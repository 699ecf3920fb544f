// Command identity-ocr turns scanned identity documents into JSON records.
//
// Usage:
//
//	identity-ocr annotate                    # test_images/ -> test_expected_output/
//	identity-ocr prepare --base dataset      # build train/test splits with annotations
//	identity-ocr extract --type pan ocr.txt  # run field extraction on OCR text
package main

func main() {
	Execute()
}
