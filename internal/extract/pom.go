package extract

import "strings"

// section is one of the pom.xml regions the scanner tracks. Regions are not
// exclusive: a <dependencies> nested in <dependencyManagement> is inside both.
type section uint8

const (
	inProperties section = 1 << iota
	inDependencies
	inDependencyManagement
)

const tabWidth = "    "

// pomScanner walks a pom.xml line by line, collecting <properties> values
// and emitting the dependency regions with property references resolved.
type pomScanner struct {
	state      section
	properties map[string]string
	out        strings.Builder
}

// DependencyBlock extracts the <dependencies> and <dependencyManagement>
// regions of a pom.xml. Opening tag lines are part of the region, as are
// closing tag lines. The first ${name} on a dependency line is replaced when
// name was declared in <properties>, unless it starts at column 0. Each
// emitted line loses one leading tab and its other tabs become four spaces.
func DependencyBlock(lines []string) string {
	s := &pomScanner{properties: make(map[string]string)}
	for _, line := range lines {
		s.scan(line)
	}
	return s.out.String()
}

func (s *pomScanner) scan(line string) {
	opened := s.enter(line)

	if s.state&inProperties != 0 && !opened {
		s.recordProperty(line)
	}

	if s.state&inDependencies != 0 {
		line = s.substitute(line)
	}

	if s.state&(inDependencies|inDependencyManagement) != 0 {
		s.out.WriteString(strings.ReplaceAll(strings.TrimPrefix(line, "\t"), "\t", tabWidth))
		s.out.WriteString("\n")
	}

	s.exit(line)
}

// enter applies the tag transitions checked before a line is handled and
// reports whether the line opened a region. Only the first matching tag on a
// line counts.
func (s *pomScanner) enter(line string) bool {
	switch {
	case strings.Contains(line, "<properties>"):
		s.state |= inProperties
		return true
	case strings.Contains(line, "</properties>"):
		s.state &^= inProperties
	case strings.Contains(line, "<dependencies>"):
		s.state |= inDependencies
		return true
	case strings.Contains(line, "<dependencyManagement>"):
		s.state |= inDependencyManagement
		return true
	}
	return false
}

// exit applies closing transitions once the line has been emitted
func (s *pomScanner) exit(line string) {
	switch {
	case strings.Contains(line, "</dependencies>"):
		s.state &^= inDependencies
	case strings.Contains(line, "</dependencyManagement>"):
		s.state &^= inDependencyManagement
	}
}

// recordProperty reads "<name>value</name>". A name without a value clears
// any earlier definition.
func (s *pomScanner) recordProperty(line string) {
	tokens := strings.FieldsFunc(strings.TrimSpace(line), func(r rune) bool {
		return r == '<' || r == '>' || r == '/'
	})

	switch len(tokens) {
	case 0:
		return
	case 1:
		delete(s.properties, tokens[0])
	default:
		s.properties[tokens[0]] = tokens[1]
	}
}

func (s *pomScanner) substitute(line string) string {
	start := strings.Index(line, "${")
	if start <= 0 {
		return line
	}

	end := strings.Index(line[start:], "}")
	if end < 0 {
		return line
	}
	end += start

	value, ok := s.properties[line[start+2:end]]
	if !ok {
		return line
	}

	return line[:start] + value + line[end+1:]
}
