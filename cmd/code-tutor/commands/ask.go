package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/code-tutor/internal/core/tutor"
	"github.com/jinford/code-tutor/internal/platform/config"
)

// AskAction は質問からコードを1回だけ生成するコマンドのアクション
func AskAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	enable := cmd.Bool("enable")
	asJSON := cmd.Bool("json")

	question := strings.Join(cmd.Args().Slice(), " ")
	if question == "" {
		return fmt.Errorf("質問文を指定してください")
	}

	appCtx, err := NewAppContext(envFile, func(cfg *config.Config) {
		if enable {
			cfg.Tutor.Enabled = true
		}
	})
	if err != nil {
		return err
	}

	resp, err := appCtx.Container.TutorService.GenerateCode(ctx, question)
	if err != nil {
		appCtx.Logger().Error("コード生成に失敗しました", "error", err)
		return fmt.Errorf("コード生成に失敗: %w", err)
	}

	if asJSON {
		return writeResponseJSON(os.Stdout, resp)
	}
	return displayResponseTable(os.Stdout, resp)
}

// writeResponseJSON は結果をHTTPレスポンスと同じJSON形式で出力します
func writeResponseJSON(w io.Writer, resp tutor.CodeResponse) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resp); err != nil {
		return fmt.Errorf("JSONの出力に失敗: %w", err)
	}
	return nil
}

// displayResponseTable は結果をテーブル形式で表示します
func displayResponseTable(w io.Writer, resp tutor.CodeResponse) error {
	if !resp.IsRelevant {
		fmt.Fprintln(w, "回答は生成されませんでした（TUTOR_ENABLED=false または --enable 未指定）")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("項目", "内容")
	if err := table.Append("関数", resp.Function); err != nil {
		return fmt.Errorf("テーブルの構築に失敗: %w", err)
	}
	if err := table.Append("説明", resp.Explanation); err != nil {
		return fmt.Errorf("テーブルの構築に失敗: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("テーブルの出力に失敗: %w", err)
	}
	return nil
}
