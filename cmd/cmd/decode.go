// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pngtools/pngr/internal/logger"
	"github.com/pngtools/pngr/internal/png"
	"github.com/pngtools/pngr/pkg/pbar"
	fmtutil "github.com/pngtools/pngr/pkg/util/format"
)

func DefineDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "decode <file>...",
		Short:        "Decode PNG files into raw pixel rasters",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunDecode,
	}

	cmd.Flags().StringP("output", "o", "", "write the raw raster bytes to the specified file (single input only)")
	cmd.Flags().String("pixel", "", "print the pixel at the given x,y coordinate")
	cmd.Flags().String("log-level", "INFO", "minimum log level")
	cmd.Flags().String("log-file", "", "write the decode log to the specified file")
	cmd.Flags().Bool("no-log", false, "disable logging")

	return cmd
}

func RunDecode(cmd *cobra.Command, args []string) error {
	outputFile, _ := cmd.Flags().GetString("output")
	pixelArg, _ := cmd.Flags().GetString("pixel")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")
	disableLog, _ := cmd.Flags().GetBool("no-log")

	if outputFile != "" && len(args) > 1 {
		return fmt.Errorf("--output requires a single input file")
	}

	var px, py int
	probePixel := pixelArg != ""
	if probePixel {
		if _, err := fmt.Sscanf(pixelArg, "%d,%d", &px, &py); err != nil {
			return fmt.Errorf("invalid --pixel coordinate %q: want x,y", pixelArg)
		}
	}

	log := logger.Discard()
	if !disableLog {
		l, f, err := logger.Setup(os.Stderr, logFile, logger.ParseLevel(logLevel))
		if err != nil {
			return err
		}
		if f != nil {
			defer f.Close()
		}
		log = l
	}

	multi := len(args) > 1

	var bar *pbar.ProgressBarState
	if multi {
		fmt.Printf("[INFO] Decoding %d files...\n", len(args))
		bar = pbar.NewProgressBarState(len(args))
	}

	start := time.Now()
	failed := 0
	var totalData int64

	for _, path := range args {
		raster, err := decodeFile(path)
		if err != nil {
			log.Error("decode failed", "file", path, "err", err)
			failed++
			if !multi {
				return err
			}
			bar.FailedFiles++
			bar.Render(false)
			continue
		}

		totalData += int64(len(raster.Pix))
		log.Debug("decoded",
			"file", path,
			"width", raster.Width,
			"height", raster.Height,
			"color", raster.ColorType.String(),
		)

		if !multi {
			fmt.Printf("[INFO] Source: \t%s\n", path)
			fmt.Printf("[INFO] Dimensions: \t%dx%d\n", raster.Width, raster.Height)
			fmt.Printf("[INFO] Color Type: \t%s\n", raster.ColorType)
			fmt.Printf("[INFO] Bytes/Pixel: \t%d\n", raster.BytesPerPixel)
			fmt.Printf("[INFO] Raster Size: \t%s\n", fmtutil.FormatBytes(int64(len(raster.Pix))))
		} else {
			bar.DoneFiles++
			bar.ProcessedBytes = totalData
			bar.Render(false)
		}

		if probePixel {
			p, err := raster.Pixel(px, py)
			if err != nil {
				return err
			}
			fmt.Printf("[INFO] Pixel (%d,%d): \t%v\n", px, py, p)
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, raster.Pix, 0644); err != nil {
				return fmt.Errorf("failed to write raster: %w", err)
			}
			fmt.Printf("[INFO] Raster saved to: \t%s\n", outputFile)
		}
	}

	if multi {
		bar.Render(true)
		bar.Finish()

		fmt.Printf("[INFO] Decode completed!\n")
		fmt.Printf("[INFO] Files decoded: \t%d\n", len(args)-failed)
		fmt.Printf("[INFO] Total data: \t%s\n", fmtutil.FormatBytes(totalData))
		fmt.Printf("[INFO] Duration: \t%s\n", fmtutil.FormatDurationHMS(time.Since(start)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(args))
	}
	return nil
}

func decodeFile(path string) (*png.Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return png.Decode(data)
}
