// Command gltfctl inspects, validates and converts glTF 2.0 assets
// from the command line, wiring gltfkit's decode/validate/encode
// pipeline into a small kingpin-based CLI in the style of the
// retrieval pack's other kingpin-based tools (e.g. swordkee-fauxgl-gltf).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"

	"github.com/ferrite3d/gltfkit"
	"github.com/ferrite3d/gltfkit/bytesrc"
	"github.com/ferrite3d/gltfkit/internal/glog"
)

var (
	app = kingpin.New("gltfctl", "Inspect, validate and convert glTF 2.0 assets.")

	verbose = app.Flag("verbose", "Enable debug logging.").Short('v').Bool()

	validateCmd  = app.Command("validate", "Decode and cross-reference validate a document.")
	validatePath = validateCmd.Arg("path", "Path to a .gltf or .glb file.").Required().String()

	infoCmd  = app.Command("info", "Print a summary of a document's contents.")
	infoPath = infoCmd.Arg("path", "Path to a .gltf or .glb file.").Required().String()

	toGLBCmd  = app.Command("to-glb", "Convert a .gltf document to a .glb container.")
	toGLBIn   = toGLBCmd.Arg("in", "Input .gltf path.").Required().String()
	toGLBOut  = toGLBCmd.Arg("out", "Output .glb path.").Required().String()

	toJSONCmd  = app.Command("to-gltf", "Convert a .glb container to a .gltf document.")
	toJSONIn   = toJSONCmd.Arg("in", "Input .glb path.").Required().String()
	toJSONOut  = toJSONCmd.Arg("out", "Output .gltf path.").Required().String()
	toJSONPretty = toJSONCmd.Flag("pretty", "Pretty-print the output JSON.").Bool()
)

func main() {
	app.Version("gltfctl (gltfkit)")
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *verbose {
		glog.Default.SetLevel(glog.DEBUG)
	}

	runID := uuid.New().String()

	var err error
	switch cmd {
	case validateCmd.FullCommand():
		err = runValidate(runID, *validatePath)
	case infoCmd.FullCommand():
		err = runInfo(runID, *infoPath)
	case toGLBCmd.FullCommand():
		err = runToGLB(runID, *toGLBIn, *toGLBOut)
	case toJSONCmd.FullCommand():
		err = runToJSON(runID, *toJSONIn, *toJSONOut, *toJSONPretty)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "gltfctl[%s]: %v\n", runID, err)
		os.Exit(1)
	}
}

func loadAsset(path string) (*gltfkit.Asset, error) {
	src, err := bytesrc.OpenFile(path, 0)
	if err != nil {
		return nil, gltfkit.Wrap(gltfkit.InvalidPath, path, err)
	}
	opts := gltfkit.DefaultDecodeOptions()
	opts.BaseDir = filepath.Dir(path)

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return gltfkit.DecodeGLBAsset(src, opts)
	}
	return gltfkit.Decode(src, opts)
}

func runValidate(runID, path string) error {
	asset, err := loadAsset(path)
	if err != nil {
		return err
	}
	if err := gltfkit.Validate(asset); err != nil {
		return err
	}
	if flagged := gltfkit.SingleRootTransformed(asset); len(flagged) > 0 {
		glog.Info("[%s] %d scene(s) have a transformed single root node: %v", runID, len(flagged), flagged)
	}
	fmt.Printf("%s: valid\n", path)
	return nil
}

func runInfo(runID, path string) error {
	asset, err := loadAsset(path)
	if err != nil {
		return err
	}
	glog.Debug("[%s] loaded %s", runID, path)
	fmt.Printf("generator:  %s\n", asset.Metadata.Generator)
	fmt.Printf("version:    %s\n", asset.Metadata.Version)
	fmt.Printf("scenes:     %d\n", len(asset.Scenes))
	fmt.Printf("nodes:      %d\n", len(asset.Nodes))
	fmt.Printf("meshes:     %d\n", len(asset.Meshes))
	fmt.Printf("materials:  %d\n", len(asset.Materials))
	fmt.Printf("accessors:  %d\n", len(asset.Accessors))
	fmt.Printf("buffers:    %d\n", len(asset.Buffers))
	fmt.Printf("textures:   %d\n", len(asset.Textures))
	fmt.Printf("animations: %d\n", len(asset.Animations))
	fmt.Printf("extensionsUsed:     %s\n", strings.Join(asset.ExtensionsUsed, ", "))
	fmt.Printf("extensionsRequired: %s\n", strings.Join(asset.ExtensionsRequired, ", "))
	return nil
}

func runToGLB(runID, in, out string) error {
	asset, err := loadAsset(in)
	if err != nil {
		return err
	}
	glog.Debug("[%s] converting %s -> %s", runID, in, out)

	f, err := os.Create(out)
	if err != nil {
		return gltfkit.Wrap(gltfkit.FailedWritingFiles, out, err)
	}
	defer f.Close()

	return gltfkit.EncodeGLBAsset(f, asset, gltfkit.EncodeOptions{})
}

func runToJSON(runID, in, out string, pretty bool) error {
	asset, err := loadAsset(in)
	if err != nil {
		return err
	}
	glog.Debug("[%s] converting %s -> %s", runID, in, out)

	data, err := gltfkit.EncodeJSON(asset, gltfkit.EncodeOptions{PrettyPrintJson: pretty})
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return gltfkit.Wrap(gltfkit.FailedWritingFiles, out, err)
	}
	return nil
}
