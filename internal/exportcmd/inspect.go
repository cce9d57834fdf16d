package exportcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/seysony91-ship-it/product-images/internal/config"
	"github.com/seysony91-ship-it/product-images/internal/selector"
)

func executeInspect(ctx context.Context, env *Env, cfg config.Config, folder string, asJSON bool) error {
	urls, err := newURLBuilder(cfg)
	if err != nil {
		return err
	}

	assets, err := newLister(env, cfg).ListFilesInFolder(ctx, folder)
	if err != nil {
		return fmt.Errorf("failed to list folder %s: %w", folder, err)
	}
	if len(assets) == 0 {
		return fmt.Errorf("no images found in folder %s", folder)
	}

	sel := selectFolder(folder, assets, urls)

	if asJSON {
		encoder := json.NewEncoder(env.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(sel)
	}

	slots := make(map[string]int, len(sel.Entries))
	roles := make(map[string]string, len(sel.Entries))
	for i, e := range sel.Entries {
		slots[e.Name] = i + 1
		roles[e.Name] = e.Role
	}

	names := make([]string, 0, len(assets))
	seen := make(map[string]bool, len(assets))
	for _, a := range assets {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}
	selector.Sort(names)

	rows := make([][]string, 0, len(names))
	picked := make(map[int]bool)
	for i, name := range names {
		slot := ""
		if s, ok := slots[name]; ok {
			slot = strconv.Itoa(s)
			picked[i] = true
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(selector.ExtractNum(name)),
			mark(selector.IsCover(name)),
			mark(selector.IsDetail(name)),
			slot,
			roles[name],
		})
	}

	fmt.Fprintln(env.Stdout, styleTitle.Render(fmt.Sprintf("Folder %s: %d images, %d picked", folder, len(names), len(sel.Entries))))
	fmt.Fprintln(env.Stdout, newTable([]string{"FILE", "KEY", "COVER", "DETAIL", "SLOT", "ROLE"}, rows, picked).Render())

	fmt.Fprintln(env.Stdout)
	for i, e := range sel.Entries {
		fmt.Fprintf(env.Stdout, "url_%d  %s\n", i+1, styleDim.Render(e.URL))
	}

	return nil
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return ""
}
