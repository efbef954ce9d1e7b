package testgen

import "text/template"

// Generated test text. Two-space indentation, no trailing whitespace.
var (
	fullWrapperTmpl    = template.Must(template.New("wrapper-full").Parse(fullWrapperTemplate))
	minimalWrapperTmpl = template.Must(template.New("wrapper-minimal").Parse(minimalWrapperTemplate))
	caseTmpl           = template.Must(template.New("case").Parse(caseTemplate))
	suiteTmpl          = template.Must(template.New("suite").Parse(suiteTemplate))
)

type wrapperData struct {
	Component string
}

type caseData struct {
	Selector string
	Label    string
}

type suiteData struct {
	Component string
	Cases     []string
}

const fullWrapperTemplate = `vi.mock('@/folder/file', () => {
  return {
    default: vi.fn(),
  }
})

vi.mock('@/folder/Name', async () => {
  const actual = await vi.importActual('@/folder/file')
  return {
    ...actual,
    name: {
      functionName: async () => Promise.resolve(),
    },
  }
})

const mocks = {}

const props: MyPropsType = {}

// Replace props type MyPropsType here and above to fit with real model
const createWrapper = (testprops: Partial<MyPropsType> = {}): VueWrapper => {
  const finalProps = {
    ...props,
    ...testprops,
  }

  return shallowMount({{.Component}}, {
    props: finalProps,
    global: {
      plugins: [],
      mocks,
    },
  })
}

let wrapper: VueWrapper<{{.Component}}> = createWrapper()

`

const minimalWrapperTemplate = `const mocks = {}

const createWrapper = (): VueWrapper => {
  return shallowMount({{.Component}}, {
    global: {
      plugins: [],
      mocks,
    },
  })
}

let wrapper: VueWrapper = createWrapper()

`

const caseTemplate = `  it('should render {{.Label}} attribute', () => {
    const element = wrapper.find({{.Selector}})

    expect(element.exists()).to.be.true
  })
`

const suiteTemplate = `describe('Should display {{.Component}}', () => {
  beforeEach(() => {
    wrapper = createWrapper()
  })
{{range .Cases}}
{{.}}{{end}}})
`
