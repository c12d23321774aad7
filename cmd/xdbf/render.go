package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/samcharles93/xdbf/internal/api"
	"github.com/samcharles93/xdbf/pkg/xdbf"
)

func renderInspect(w io.Writer, g *xdbf.GameData) error {
	h := g.Header()
	fmt.Fprintf(w, "size:          %d bytes\n", g.Size())
	fmt.Fprintf(w, "slots:         %d (%d used)\n", h.SlotCount, h.UsedSlotCount)
	fmt.Fprintf(w, "free slots:    %d\n", h.FreeSlotCount)
	fmt.Fprintf(w, "content at:    0x%x\n", g.ContentOffset())
	fmt.Fprintf(w, "default:       %s\n", g.DefaultLocale())
	fmt.Fprintf(w, "locales:       %s\n", joinLocales(g.Locales()))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tID\tOFFSET\tSIZE\tSTATUS")
	for _, e := range g.Entries() {
		status := "ok"
		if b := g.Block(e); !b.Found() {
			status = b.Err().Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t0x%x\t%d\t%s\n", e.Section, entryID(e), e.Offset, e.Size, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if free := g.FreeList(); len(free) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "free list:")
		for _, fe := range free {
			fmt.Fprintf(w, "  0x%x +%d\n", fe.Offset, fe.Size)
		}
	}
	return nil
}

// entryID names the well-known ids and falls back to hex.
func entryID(e xdbf.Entry) string {
	switch {
	case e.Section == xdbf.SectionStringTable:
		return xdbf.Locale(e.ID).String()
	case e.ID == xdbf.IDTitle:
		return "title"
	case e.Section == xdbf.SectionMetadata && e.ID == xdbf.IDAchievements:
		return "achievements"
	case e.Section == xdbf.SectionMetadata && e.ID == xdbf.IDLocale:
		return "locale"
	default:
		return fmt.Sprintf("0x%x", e.ID)
	}
}

func joinLocales(ls []xdbf.Locale) string {
	if len(ls) == 0 {
		return "-"
	}
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

func renderTitle(w io.Writer, g *xdbf.GameData, locale xdbf.Locale) {
	s := g.Summary()
	title := g.String(locale, uint16(xdbf.IDTitle))
	if title == "" {
		title = s.Title
	}
	fmt.Fprintf(w, "title:         %s\n", title)
	fmt.Fprintf(w, "locale:        %s\n", locale)
	fmt.Fprintf(w, "achievements:  %d (%d gamerscore)\n", s.AchievementCount, s.Gamerscore)
	if s.HasIcon {
		fmt.Fprintf(w, "icon:          %d bytes\n", s.IconSize)
	} else {
		fmt.Fprintln(w, "icon:          none")
	}
}

func renderStrings(w io.Writer, recs []xdbf.StringRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEXT")
	for _, r := range recs {
		fmt.Fprintf(tw, "0x%04x\t%s\n", r.ID, r.Text)
	}
	return tw.Flush()
}

func renderAchievements(w io.Writer, list []xdbf.Achievement, count uint32, asJSON bool) error {
	if asJSON {
		out := make([]api.AchievementResponse, 0, len(list))
		for _, a := range list {
			out = append(out, api.NewAchievementResponse(a))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGS\tTYPE\tLABEL\tDESCRIPTION")
	for _, a := range list {
		label := a.Label
		if a.Secret() {
			label += " (secret)"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", a.ID, a.Gamerscore, a.Type(), label, a.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if int(count) != len(list) {
		fmt.Fprintf(w, "\n%d declared, %d readable\n", count, len(list))
	}
	return nil
}
